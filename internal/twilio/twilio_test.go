package twilio

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"encoding/xml"
	"net/url"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type response struct {
	XMLName  xml.Name `xml:"Response"`
	Messages []string `xml:"Message"`
}

func TestMessagingResponse(t *testing.T) {
	text := "Order 12345\nStatus: <Shipped> & \"done\""
	body, err := MessagingResponse(text)
	require.NoError(t, err)

	s := string(body)
	assert.True(t, strings.HasPrefix(s, "<?xml"))
	assert.NotContains(t, s, "<Shipped>")

	var decoded response
	require.NoError(t, xml.Unmarshal(body, &decoded))
	require.Len(t, decoded.Messages, 1)
	assert.Equal(t, text, decoded.Messages[0])
}

func TestMessagingResponseMultiple(t *testing.T) {
	body, err := MessagingResponse("one", "two")
	require.NoError(t, err)

	var decoded response
	require.NoError(t, xml.Unmarshal(body, &decoded))
	assert.Equal(t, []string{"one", "two"}, decoded.Messages)
}

func TestMessagingResponseEmpty(t *testing.T) {
	body, err := MessagingResponse()
	require.NoError(t, err)

	var decoded response
	require.NoError(t, xml.Unmarshal(body, &decoded))
	assert.Empty(t, decoded.Messages)
}

// sign produces the signature Twilio attaches to a webhook POST.
func sign(authToken, fullURL string, params url.Values) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(fullURL)
	for _, k := range keys {
		b.WriteString(k + params.Get(k))
	}
	mac := hmac.New(sha1.New, []byte(authToken))
	mac.Write([]byte(b.String())) //nolint:errcheck
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Example from Twilio's webhook security documentation.
func TestValidatorKnownVector(t *testing.T) {
	params := url.Values{
		"CallSid": {"CA1234567890ABCDE"},
		"Caller":  {"+12349013030"},
		"Digits":  {"1234"},
		"From":    {"+12349013030"},
		"To":      {"+18005551212"},
	}
	v := NewValidator("12345")
	assert.True(t, v.Valid("https://mycompany.com/myapp.php?foo=1&bar=2", params, "0/KCTR6DLpKmkAf8muzZqo1nDgQ="))
	assert.Equal(t, "0/KCTR6DLpKmkAf8muzZqo1nDgQ=", sign("12345", "https://mycompany.com/myapp.php?foo=1&bar=2", params))
}

func TestValidator(t *testing.T) {
	params := url.Values{"Body": {"order 1"}, "From": {"whatsapp:+15550001"}}
	sig := sign("secret", "https://bot.example.com/api/whatsapp", params)
	v := NewValidator("secret")

	assert.True(t, v.Valid("https://bot.example.com/api/whatsapp", params, sig))
	assert.False(t, NewValidator("other").Valid("https://bot.example.com/api/whatsapp", params, sig))
	assert.False(t, v.Valid("https://bot.example.com/sms", params, sig))
	assert.False(t, v.Valid("https://bot.example.com/api/whatsapp", params, ""))

	params.Set("Body", "order 2")
	assert.False(t, v.Valid("https://bot.example.com/api/whatsapp", params, sig))
}

func TestValidatorIgnoresDefaultPort(t *testing.T) {
	params := url.Values{"Body": {"help"}}
	v := NewValidator("secret")

	withPort := sign("secret", "https://bot.example.com:443/api/whatsapp", params)
	assert.True(t, v.Valid("https://bot.example.com/api/whatsapp", params, withPort))

	withoutPort := sign("secret", "https://bot.example.com/api/whatsapp", params)
	assert.True(t, v.Valid("https://bot.example.com:443/api/whatsapp", params, withoutPort))
}
