package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/georisk-cli/internal/model"
)

func TestParseAnalyzeRequest(t *testing.T) {
	req, err := parseAnalyzeRequest(strings.NewReader(`{"ticker": "tsla", "layer": "factory"}`))
	require.NoError(t, err)
	assert.Equal(t, "TSLA", req.Ticker)
	assert.Equal(t, model.LayerFactory, req.Layer)
}

func TestParseAnalyzeRequest_DefaultLayer(t *testing.T) {
	req, err := parseAnalyzeRequest(strings.NewReader(`{"ticker": "EQNR"}`))
	require.NoError(t, err)
	assert.Equal(t, model.LayerHQ, req.Layer)
}

func TestParseAnalyzeRequest_BlankTicker(t *testing.T) {
	cases := []string{
		`{"ticker": ""}`,
		`{"ticker": "   "}`,
		`{"layer": "factory"}`,
	}
	for _, body := range cases {
		_, err := parseAnalyzeRequest(strings.NewReader(body))
		assert.Error(t, err, body)
	}
}

func TestParseAnalyzeRequest_BadInput(t *testing.T) {
	_, err := parseAnalyzeRequest(strings.NewReader(`not json`))
	assert.Error(t, err)

	_, err = parseAnalyzeRequest(strings.NewReader(`{"ticker": "TSLA", "layer": "warehouse"}`))
	assert.Error(t, err)
}
