package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/environment"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/requestid"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), buf.String())
	return entry
}

func TestNew_Formats(t *testing.T) {
	t.Parallel()

	t.Run("json by default", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger.New(logger.WithOutput(&buf)).Info("cart saved", logger.ProductID("sku-1"))

		entry := decode(t, &buf)
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "cart saved", entry["msg"])
		assert.Equal(t, "sku-1", entry["product_id"])
	})

	t.Run("text", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger.New(logger.WithOutput(&buf), logger.WithTextFormatter()).Info("cart saved")
		assert.Contains(t, buf.String(), `msg="cart saved"`)
	})

	t.Run("last format option wins", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger.New(logger.WithOutput(&buf), logger.WithTextFormatter(), logger.WithJSONFormatter()).Info("x")
		assert.Equal(t, "x", decode(t, &buf)["msg"])
	})

	t.Run("unknown format panics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { logger.New(logger.WithFormat(logger.Format("xml"))) })
	})
}

func TestWithLevelName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		level     string
		debugSeen bool
		infoSeen  bool
	}{
		{"debug", "debug", true, true},
		{"upper case", "WARN", false, false},
		{"empty keeps default", "", false, true},
		{"unknown keeps default", "verbose", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			log := logger.New(logger.WithOutput(&buf), logger.WithTextFormatter(), logger.WithLevelName(tt.level))
			log.Debug("dbg")
			log.Info("inf")
			assert.Equal(t, tt.debugSeen, bytes.Contains(buf.Bytes(), []byte("msg=dbg")))
			assert.Equal(t, tt.infoSeen, bytes.Contains(buf.Bytes(), []byte("msg=inf")))
		})
	}
}

func TestWithEnvironment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		env       environment.Environment
		json      bool
		debugSeen bool
	}{
		{environment.Development, false, true},
		{environment.Staging, true, false},
		{environment.Production, true, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.env), func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			log := logger.New(logger.WithEnvironment(tt.env, "storefront"), logger.WithOutput(&buf))
			log.Debug("dbg")
			log.Info("inf")

			out := buf.String()
			assert.Equal(t, tt.debugSeen, bytes.Contains(buf.Bytes(), []byte("dbg")))
			if tt.json {
				lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
				var entry map[string]any
				require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
				assert.Equal(t, "storefront", entry["service"])
				assert.Equal(t, string(tt.env), entry["env"])
				return
			}
			assert.Contains(t, out, "service=storefront")
		})
	}

	t.Run("level name overrides preset", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(
			logger.WithEnvironment(environment.Production, "storefront"),
			logger.WithLevelName("debug"),
			logger.WithOutput(&buf),
		)
		log.Debug("token fetched")
		assert.Equal(t, "DEBUG", decode(t, &buf)["level"])
	})
}

func TestContextExtractors(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithAttr(slog.String("service", "storefront")),
		logger.WithContextExtractors(nil, requestid.LoggerExtractor(), environment.LoggerExtractor()),
	)

	ctx := requestid.WithContext(context.Background(), "req-42")
	ctx = environment.WithContext(ctx, environment.Staging)
	log.WarnContext(ctx, "persist failed", logger.Error(assert.AnError))

	entry := decode(t, &buf)
	assert.Equal(t, "req-42", entry["request_id"])
	assert.Equal(t, "staging", entry["env"])
	assert.Equal(t, "storefront", entry["service"])
	assert.Equal(t, assert.AnError.Error(), entry["error"])

	buf.Reset()
	log.Info("no request")
	entry = decode(t, &buf)
	assert.NotContains(t, entry, "request_id")
}

func TestSetAsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger.SetAsDefault(logger.New(logger.WithOutput(&buf)))
	slog.Info("default")
	assert.Equal(t, "default", decode(t, &buf)["msg"])
}
