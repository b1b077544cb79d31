package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAssignee(t *testing.T) {
	t.Run("case and surrounding whitespace do not fragment identity", func(t *testing.T) {
		assert.Equal(t, NormalizeAssignee("Ali"), NormalizeAssignee("ali "))
		assert.Equal(t, NormalizeAssignee("Ali Hassan"), NormalizeAssignee("  ALI   hassan"))
	})

	t.Run("different names stay different", func(t *testing.T) {
		assert.NotEqual(t, NormalizeAssignee("Ali"), NormalizeAssignee("Ali Hassan"))
	})

	t.Run("blank labels are unassigned", func(t *testing.T) {
		assert.True(t, NormalizeAssignee("   ").IsEmpty())
		assert.True(t, NormalizeAssignee("").IsEmpty())
	})

	t.Run("non latin labels are folded too", func(t *testing.T) {
		assert.Equal(t, NormalizeAssignee("STRASSE"), NormalizeAssignee("strasse"))
		assert.Equal(t, NormalizeAssignee("علي"), NormalizeAssignee(" علي "))
	})
}

func TestDisplayAssignee(t *testing.T) {
	assert.Equal(t, "Ali Hassan", DisplayAssignee("  Ali    Hassan "))
}
