package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBotToken = "1234567:test-bot-token"

// signInitData builds a correctly signed init data query string the way the
// Telegram client would.
func signInitData(values url.Values, botToken string) string {
	pairs := make([]string, 0, len(values))
	for key := range values {
		pairs = append(pairs, key+"="+values.Get(key))
	}
	sort.Strings(pairs)

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(botToken))
	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(strings.Join(pairs, "\n")))
	values.Set("hash", hex.EncodeToString(mac.Sum(nil)))

	return values.Encode()
}

func freshInitData(now time.Time) url.Values {
	return url.Values{
		"auth_date": {fmt.Sprintf("%d", now.Unix())},
		"query_id":  {"AAF0abc"},
		"user":      {`{"id":987654321,"first_name":"Anna","last_name":"Petrova","username":"annap"}`},
	}
}

func TestVerifyInitDataValid(t *testing.T) {
	now := time.Now()
	initData := signInitData(freshInitData(now), testBotToken)

	u, err := VerifyInitData(initData, testBotToken, now)

	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, int64(987654321), u.ID)
	assert.Equal(t, "Anna", u.FirstName)
	assert.Equal(t, "Petrova", u.LastName)
	assert.Equal(t, "annap", u.Username)
}

func TestVerifyInitDataTamperedUser(t *testing.T) {
	now := time.Now()
	values := freshInitData(now)
	initData := signInitData(values, testBotToken)

	tampered := strings.Replace(initData, "987654321", "111111111", 1)

	_, err := VerifyInitData(tampered, testBotToken, now)
	assert.Error(t, err)
}

func TestVerifyInitDataWrongToken(t *testing.T) {
	now := time.Now()
	initData := signInitData(freshInitData(now), "other-token")

	_, err := VerifyInitData(initData, testBotToken, now)
	assert.Error(t, err)
}

func TestVerifyInitDataMissingHash(t *testing.T) {
	_, err := VerifyInitData("auth_date=1&user=%7B%22id%22%3A1%7D", testBotToken, time.Now())
	assert.Error(t, err)
}

func TestVerifyInitDataExpired(t *testing.T) {
	now := time.Now()
	stale := freshInitData(now.Add(-48 * time.Hour))
	initData := signInitData(stale, testBotToken)

	_, err := VerifyInitData(initData, testBotToken, now)
	assert.ErrorContains(t, err, "expired")
}

func TestVerifyInitDataNoUserIsNotAnError(t *testing.T) {
	now := time.Now()
	values := url.Values{
		"auth_date": {fmt.Sprintf("%d", now.Unix())},
		"query_id":  {"AAF0abc"},
	}
	initData := signInitData(values, testBotToken)

	u, err := VerifyInitData(initData, testBotToken, now)

	require.NoError(t, err)
	assert.Nil(t, u, "absence of a user is a valid unauthenticated state")
}
