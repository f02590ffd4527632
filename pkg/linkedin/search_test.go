package linkedin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandNote(t *testing.T) {
	profile := &ProfileInfo{
		Name:     "Jane Doe",
		Title:    "Platform Engineer",
		Location: "Berlin",
	}

	note := expandNote("Hi {name}, saw your work as {title} in {location}!", profile)
	assert.Equal(t, "Hi Jane Doe, saw your work as Platform Engineer in Berlin!", note)
}

func TestExpandNoteMissingFields(t *testing.T) {
	note := expandNote("Hi {name}, {title}", &ProfileInfo{Name: "Jane Doe"})
	assert.Equal(t, "Hi Jane Doe, [Title]", note)
}

func TestExpandNoteNilProfile(t *testing.T) {
	note := expandNote("Hi {name}", nil)
	assert.Equal(t, "Hi [Name]", note)
}

func TestExpandNoteNoPlaceholders(t *testing.T) {
	note := expandNote("Would love to connect.", &ProfileInfo{Name: "Jane Doe"})
	assert.Equal(t, "Would love to connect.", note)
}

func TestProfileIDFromURL(t *testing.T) {
	assert.Equal(t, "jane-doe", profileIDFromURL("https://www.linkedin.com/in/jane-doe/"))
	assert.Equal(t, "jane-doe", profileIDFromURL("https://www.linkedin.com/in/jane-doe"))
	assert.Empty(t, profileIDFromURL("https://www.linkedin.com/feed/"))
	assert.Empty(t, profileIDFromURL(""))
}
