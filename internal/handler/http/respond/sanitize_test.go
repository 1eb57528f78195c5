package respond

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "nil",
			err:  nil,
			want: "",
		},
		{
			name: "plain message untouched",
			err:  errors.New("newsapi: status 429 (rateLimited): slow down"),
			want: "newsapi: status 429 (rateLimited): slow down",
		},
		{
			name: "query parameter",
			err:  errors.New(`Get "https://newsapi.org/v2/everything?apiKey=secret-value&q=go": EOF`),
			want: `Get "https://newsapi.org/v2/everything?apiKey=****&q=go": EOF`,
		},
		{
			name: "bare newsapi key",
			err:  errors.New("key 0123456789abcdef0123456789abcdef rejected"),
			want: "key **** rejected",
		},
		{
			name: "header dump",
			err:  errors.New("request headers: X-Api-Key: hunter2"),
			want: "request headers: X-Api-Key: ****",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeError(tt.err))
		})
	}
}
