package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/planfeed/planfeed/pkg/plan"
	"github.com/planfeed/planfeed/pkg/validator"
)

// assertAllValid checks the round-trip property: every plan an adapter emits
// must pass schema validation with zero errors.
func assertAllValid(t *testing.T, plans []plan.Plan) {
	t.Helper()
	assert.NotEmpty(t, plans)

	v := validator.New()
	for _, p := range plans {
		_, res := v.Validate(p)
		assert.True(t, res.Valid(), "plan %s failed validation: %v", p.ID, res.Errors)
	}
}
