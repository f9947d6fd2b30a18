package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmailDomainValid_RejectsMalformedAddresses(t *testing.T) {
	cases := []string{
		"",
		"no-at-sign",
		"@example.com",
		"user@",
	}
	for _, email := range cases {
		assert.False(t, IsEmailDomainValid(email), email)
	}
}
