package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRSVPNotification(t *testing.T) {
	t.Run("attending", func(t *testing.T) {
		d := NotificationData{Name: "Jane <Doe>", Email: "jane@example.com", Attending: true, NumPersons: 2}

		html, err := RSVPNotificationHTML(d)
		require.NoError(t, err)
		assert.Contains(t, html, "Jane &lt;Doe&gt;")
		assert.Contains(t, html, "Number of persons")

		text, err := RSVPNotificationText(d)
		require.NoError(t, err)
		assert.Contains(t, text, "Name: Jane <Doe>")
		assert.Contains(t, text, "Attending: Yes")
		assert.Contains(t, text, "Number of persons: 2")
	})

	t.Run("not attending", func(t *testing.T) {
		d := NotificationData{Name: "Jane", Email: "jane@example.com", NumPersons: 1}

		html, err := RSVPNotificationHTML(d)
		require.NoError(t, err)
		assert.NotContains(t, html, "Number of persons")

		text, err := RSVPNotificationText(d)
		require.NoError(t, err)
		assert.Contains(t, text, "Attending: No")
		assert.NotContains(t, text, "Number of persons")
	})
}
