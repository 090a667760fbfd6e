// Package binder fills request structs from the parts of an HTTP request.
//
// Each binder handles one source and only touches fields carrying its tag:
//
//	type addItemRequest struct {
//		ProductID string `json:"product_id"`
//		Quantity  int    `json:"quantity"`
//	}
//
//	type searchRequest struct {
//		Search string `query:"q"`
//		Limit  int    `query:"limit"`
//	}
//
//	type itemRequest struct {
//		ID string `path:"id"`
//	}
//
// JSON is strict: unknown fields, trailing data, a wrong content type and
// bodies over 64KB are errors. A request without a body makes JSON return
// ErrBinderNotApplicable so it can be combined with the other binders.
package binder
