package httputil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonBody(contentLen int) string {
	return `{"content":"` + strings.Repeat("a", contentLen) + `"}`
}

func TestParseJSONDefaultCap(t *testing.T) {
	var dest struct {
		Content string `json:"content"`
	}

	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(jsonBody(11<<20)))
	err := ParseJSON(httptest.NewRecorder(), req, &dest)

	assert.Error(t, err)
}

func TestParseJSONMaxAllowsLargeBodies(t *testing.T) {
	var dest struct {
		Content string `json:"content"`
	}

	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(jsonBody(11<<20)))
	err := ParseJSONMax(httptest.NewRecorder(), req, &dest, 64<<20)

	require.NoError(t, err)
	assert.Len(t, dest.Content, 11<<20)
}

func TestParseJSONMaxStillCaps(t *testing.T) {
	var dest struct {
		Content string `json:"content"`
	}

	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(jsonBody(1<<10)))
	err := ParseJSONMax(httptest.NewRecorder(), req, &dest, 64)

	assert.Error(t, err)
}
