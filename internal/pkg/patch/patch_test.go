//go:build unit

package patch_test

import (
	"testing"

	"campus-placement/internal/pkg/patch"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	blank, padded := "   ", "  Technical interview \n"

	assert.Equal(t, "", patch.Text(nil))
	assert.Equal(t, "", patch.Text(&blank))
	assert.Equal(t, "Technical interview", patch.Text(&padded))
}

func TestCoalesce(t *testing.T) {
	n := 3
	assert.Equal(t, 3, patch.Coalesce(&n, 7))
	assert.Equal(t, 7, patch.Coalesce[int](nil, 7))
}
