package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// TelegramUser is the identity embedded in mini-app init data. A missing
// user is a valid not-yet-authenticated state, not an error.
type TelegramUser struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
}

// initDataMaxAge bounds how old a signed init data payload may be before it
// is rejected as stale.
const initDataMaxAge = 24 * time.Hour

// VerifyInitData checks the HMAC signature of a Telegram WebApp initData
// query string against the bot token and returns the embedded user.
// The signature scheme is the one Telegram documents: data-check-string of
// sorted key=value lines, keyed with HMAC-SHA256("WebAppData", botToken).
func VerifyInitData(initData, botToken string, now time.Time) (*TelegramUser, error) {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, fmt.Errorf("malformed init data: %w", err)
	}
	gotHash := values.Get("hash")
	if gotHash == "" {
		return nil, fmt.Errorf("init data has no hash")
	}

	pairs := make([]string, 0, len(values))
	for key := range values {
		if key == "hash" {
			continue
		}
		pairs = append(pairs, key+"="+values.Get(key))
	}
	sort.Strings(pairs)
	checkString := strings.Join(pairs, "\n")

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(botToken))
	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(checkString))
	wantHash := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(wantHash), []byte(gotHash)) {
		return nil, fmt.Errorf("init data signature mismatch")
	}

	if rawDate := values.Get("auth_date"); rawDate != "" {
		unix, err := strconv.ParseInt(rawDate, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid auth_date: %w", err)
		}
		if now.Sub(time.Unix(unix, 0)) > initDataMaxAge {
			return nil, fmt.Errorf("init data expired")
		}
	}

	rawUser := values.Get("user")
	if rawUser == "" {
		return nil, nil
	}
	u := &TelegramUser{}
	if err := json.Unmarshal([]byte(rawUser), u); err != nil {
		return nil, fmt.Errorf("invalid user payload: %w", err)
	}
	if u.ID == 0 {
		return nil, fmt.Errorf("user payload has no id")
	}
	return u, nil
}
