package emulator

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func post(t *testing.T, ts *httptest.Server, op string, body any) (*http.Response, map[string]any) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(ts.URL+"/v1/accounts:"+op+"?key=test", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func errorCode(t *testing.T, body map[string]any) string {
	t.Helper()

	wire, ok := body["error"].(map[string]any)
	require.True(t, ok, "expected an error body, got %v", body)
	msg, _ := wire["message"].(string)
	return msg
}

func TestAccountLifecycle(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(New().Handler())
	t.Cleanup(ts.Close)

	// signUp
	resp, body := post(t, ts, "signUp", map[string]any{
		"email":       "ada@example.com",
		"password":    "correct-horse",
		"displayName": "Ada Lovelace",
		"photoUrl":    "https://example.com/ada.png",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	uid, _ := body["localId"].(string)
	require.NotEmpty(t, uid)
	require.Equal(t, "Ada Lovelace", body["displayName"])

	// Duplicate email.
	resp, body = post(t, ts, "signUp", map[string]any{
		"email":    "ada@example.com",
		"password": "other",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "email-already-exists", errorCode(t, body))

	// signInWithPassword
	resp, body = post(t, ts, "signInWithPassword", map[string]any{
		"email":             "ada@example.com",
		"password":          "correct-horse",
		"returnSecureToken": true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, uid, body["localId"])
	require.Equal(t, true, body["registered"])
	require.Equal(t, "3600", body["expiresIn"])
	idToken, _ := body["idToken"].(string)
	require.NotEmpty(t, idToken)

	// lookup resolves the token back to the account.
	resp, body = post(t, ts, "lookup", map[string]any{"idToken": idToken})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	users, ok := body["users"].([]any)
	require.True(t, ok)
	require.Len(t, users, 1)
	require.Equal(t, uid, users[0].(map[string]any)["localId"])

	// update
	resp, body = post(t, ts, "update", map[string]any{
		"localId":     uid,
		"email":       "countess@example.com",
		"displayName": "Countess",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "countess@example.com", body["email"])
	require.Equal(t, "Countess", body["displayName"])

	// The old email no longer signs in.
	resp, body = post(t, ts, "signInWithPassword", map[string]any{
		"email":    "ada@example.com",
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "EMAIL_NOT_FOUND", errorCode(t, body))
}

func TestSignInErrors(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(New().Handler())
	t.Cleanup(ts.Close)

	_, body := post(t, ts, "signUp", map[string]any{
		"email":    "user@example.com",
		"password": "secret-password",
	})
	require.NotEmpty(t, body["localId"])

	t.Run("unknown email", func(t *testing.T) {
		resp, body := post(t, ts, "signInWithPassword", map[string]any{
			"email":    "ghost@example.com",
			"password": "whatever",
		})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Equal(t, "EMAIL_NOT_FOUND", errorCode(t, body))
	})

	t.Run("wrong password", func(t *testing.T) {
		resp, body := post(t, ts, "signInWithPassword", map[string]any{
			"email":    "user@example.com",
			"password": "wrong",
		})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Equal(t, "INVALID_PASSWORD", errorCode(t, body))
	})
}

func TestLookupRejectsForgedTokens(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(New().Handler())
	t.Cleanup(ts.Close)

	resp, body := post(t, ts, "lookup", map[string]any{"idToken": "garbage"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "INVALID_ID_TOKEN", errorCode(t, body))

	// A token minted by a different emulator instance fails too: the
	// signing key is process-local state.
	other := New()
	token, err := other.mintIDToken("some-uid")
	require.NoError(t, err)

	resp, body = post(t, ts, "lookup", map[string]any{"idToken": token})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "INVALID_ID_TOKEN", errorCode(t, body))
}

func TestUpdateUnknownAccount(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(New().Handler())
	t.Cleanup(ts.Close)

	resp, body := post(t, ts, "update", map[string]any{
		"localId": "ghost",
		"email":   "ghost@example.com",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "USER_NOT_FOUND", errorCode(t, body))
}
