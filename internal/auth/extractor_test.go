package auth

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_AuthHeaderTokenExtractor(t *testing.T) {
	testCases := []struct {
		name      string
		header    string
		wantToken string
		wantError error
	}{
		{
			name:      "no header",
			wantError: ErrHeaderMissing,
		},
		{
			name:      "blank header",
			header:    "   ",
			wantError: ErrHeaderMissing,
		},
		{
			name:      "token in header",
			header:    "Bearer i-am-token",
			wantToken: "i-am-token",
		},
		{
			name:      "scheme is case-insensitive",
			header:    "bearer i-am-token",
			wantToken: "i-am-token",
		},
		{
			name:      "wrong scheme",
			header:    "Basic i-am-token",
			wantError: ErrHeaderNotBearer,
		},
		{
			name:      "scheme without token",
			header:    "Bearer",
			wantError: ErrHeaderNoToken,
		},
		{
			name:      "too many segments",
			header:    "Bearer one two",
			wantError: ErrHeaderTooManyParts,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			request := &http.Request{Header: http.Header{}}
			if testCase.header != "" {
				request.Header.Set("Authorization", testCase.header)
			}

			gotToken, gotError := AuthHeaderTokenExtractor(request)

			if testCase.wantError != nil {
				assert.ErrorIs(t, gotError, testCase.wantError)
			} else {
				assert.NoError(t, gotError)
			}
			assert.Equal(t, testCase.wantToken, gotToken)
		})
	}
}
