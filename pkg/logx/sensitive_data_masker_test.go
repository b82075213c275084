package logx_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/justt1n/driffle-tool/pkg/logx"
)

func TestSensitiveDataMasker(t *testing.T) {
	rq := require.New(t)

	masker := logx.NewSensitiveDataMasker()

	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Bearer header",
			input:    "GET /seller/offers HTTP/1.1\r\nAuthorization: Bearer eyJhbGciOi.secret\r\n\r\n",
			expected: "GET /seller/offers HTTP/1.1\r\nAuthorization: Bearer [MASKED]\r\n\r\n",
		},
		{
			name:     "API key in token request",
			input:    `{"apiKey":"drf_live_12345"}`,
			expected: `{"apiKey":"[MASKED]"}`,
		},
		{
			name:     "token in token response",
			input:    `{"statusCode":200,"data":{"token":"eyJhbGciOi"}}`,
			expected: `{"statusCode":200,"data":{"token":"[MASKED]"}}`,
		},
		{
			name:     "plain payload untouched",
			input:    `{"offerId":700583,"yourPrice":12.82}`,
			expected: `{"offerId":700583,"yourPrice":12.82}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			rq.Equal(tc.expected, string(masker.Mask([]byte(tc.input))))
		})
	}

	rq.Equal("as-is", string(logx.NewNopSensitiveDataMasker().Mask([]byte("as-is"))))
}
