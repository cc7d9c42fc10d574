package patch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type petPatch struct {
	Name  Field[string]  `json:"name"`
	Breed Field[string]  `json:"breed"`
	Age   Field[int]     `json:"age_months"`
	Kg    Field[float64] `json:"weight_kg"`
}

func TestField_AbsentNullAndValue(t *testing.T) {
	var p petPatch
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Rex","breed":null,"age_months":24}`), &p))

	assert.True(t, p.Name.HasValue())
	assert.Equal(t, "Rex", p.Name.Value)

	assert.True(t, p.Breed.Set)
	assert.True(t, p.Breed.Null)
	assert.Nil(t, p.Breed.Ptr())

	assert.Equal(t, 24, *p.Age.Ptr())
	assert.False(t, p.Kg.Set)
}

func TestField_Apply(t *testing.T) {
	breed := "beagle"
	cur := &breed

	Field[string]{}.Apply(&cur)
	require.NotNil(t, cur)
	assert.Equal(t, "beagle", *cur)

	Null[string]().Apply(&cur)
	assert.Nil(t, cur)

	Value("pug").Apply(&cur)
	assert.Equal(t, "pug", *cur)

	name := "Rex"
	Null[string]().ApplyValue(&name)
	assert.Equal(t, "Rex", name)
	Value("Toby").ApplyValue(&name)
	assert.Equal(t, "Toby", name)
}

func TestField_TypeMismatch(t *testing.T) {
	var p petPatch
	assert.Error(t, json.Unmarshal([]byte(`{"age_months":"veinte"}`), &p))
}
