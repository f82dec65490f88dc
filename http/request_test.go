package http

import (
	"testing"

	"github.com/indigo-web/smol/kv"
	"github.com/stretchr/testify/require"
)

func TestRequest(t *testing.T) {
	newRequest := func(headers ...string) *Request {
		storage := kv.New()
		for i := 0; i < len(headers); i += 2 {
			storage.Set(headers[i], headers[i+1])
		}

		return NewRequest("GET", "/", "HTTP/1.1", storage)
	}

	t.Run("content length", func(t *testing.T) {
		tcs := []struct {
			value string
			want  int64
		}{
			{"13", 13},
			{" 42 ", 42},
			{"0", 0},
			{"-5", 0},
			{"abc", 0},
			{"", 0},
			{"99999999999999999999999", 0},
		}

		for _, tc := range tcs {
			require.Equal(t, tc.want, newRequest("content-length", tc.value).ContentLength(), tc.value)
		}

		require.Zero(t, newRequest().ContentLength())
	})

	t.Run("expects continue", func(t *testing.T) {
		require.True(t, newRequest("expect", "100-continue").ExpectsContinue())
		require.True(t, newRequest("expect", "100-Continue").ExpectsContinue())
		require.False(t, newRequest("expect", "something-else").ExpectsContinue())
		require.False(t, newRequest().ExpectsContinue())
	})

	t.Run("nil headers", func(t *testing.T) {
		request := NewRequest("GET", "/", "HTTP/1.1", nil)
		require.NotNil(t, request.Headers)
		require.True(t, request.Headers.Empty())
	})
}
