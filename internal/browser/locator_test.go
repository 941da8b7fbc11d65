package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocator_Selector(t *testing.T) {
	tests := []struct {
		name string
		loc  Locator
		want string
	}{
		{name: "css alternatives", loc: CSS("[data-test='username'], #user-name"), want: "css=[data-test='username'], #user-name"},
		{name: "xpath", loc: XPath("//*[contains(text(),'Your Cart')]"), want: "xpath=//*[contains(text(),'Your Cart')]"},
		{name: "text", loc: Text("Products"), want: "text=Products"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.loc.Selector())
		})
	}
}

func TestLocator_String(t *testing.T) {
	assert.Equal(t, `css "#login-button"`, CSS("#login-button").String())
}

func TestLocator_Comparable(t *testing.T) {
	assert.Equal(t, CSS("#a"), CSS("#a"))
	assert.NotEqual(t, CSS("#a"), XPath("#a"))
}
