// Package cookie reads and writes HTTP cookies with shared attributes.
//
// Plain cookies carry the session token and the language preference.
// Encrypted cookies (AES-GCM, keyed from COOKIE_SECRET) carry the OAuth
// login state and one-shot flash messages such as sign-in errors:
//
//	m, err := cookie.New(cookie.Config{Secret: secret, Secure: true})
//	if err != nil {
//		return err
//	}
//	_ = m.SetEncrypted(w, "oauth_state", state, 10*time.Minute)
//
//	var got loginState
//	err = m.Pop(w, r, "oauth_state", &got)
package cookie
