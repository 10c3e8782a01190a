package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRecord(t *testing.T) {
	assert.NoError(t, ValidateRecord([]byte(`{"target":"DVWA","profile":"premium","findings":[],"tokens_used":0,"estimated_cost_usd":0}`)))
	assert.Error(t, ValidateRecord([]byte(`{"target":"","profile":"premium","findings":[],"tokens_used":0,"estimated_cost_usd":0}`)))
	assert.Error(t, ValidateRecord([]byte(`{"target":"DVWA","profile":"premium","findings":[1],"tokens_used":0,"estimated_cost_usd":0}`)))
}

func TestValidateResults(t *testing.T) {
	assert.NoError(t, ValidateResults([]byte(`[]`)))
	err := ValidateResults([]byte(`[{"target":"DVWA","profile":"premium","findings":[],"estimated_cost_usd":0.1}]`))
	assert.ErrorContains(t, err, "schema validation failed")
}
