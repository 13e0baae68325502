package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActiveFacetsToggle(t *testing.T) {
	t.Parallel()

	t.Run("first selection starts a set", func(t *testing.T) {
		t.Parallel()

		var empty ActiveFacets
		got := empty.Toggle(SpecSocket, "AM5")

		opts, ok := got[SpecSocket].Options()
		require.True(t, ok)
		assert.Equal(t, []string{"AM5"}, opts)
		assert.Nil(t, empty, "input must not be mutated")
	})

	t.Run("second option appends", func(t *testing.T) {
		t.Parallel()

		got := ActiveFacets{}.Toggle(SpecSocket, "AM5").Toggle(SpecSocket, "AM4")

		opts, _ := got[SpecSocket].Options()
		assert.Equal(t, []string{"AM5", "AM4"}, opts)
	})

	t.Run("reselect removes and emptied set drops key", func(t *testing.T) {
		t.Parallel()

		on := ActiveFacets{}.Toggle(SpecSocket, "AM5")
		off := on.Toggle(SpecSocket, "AM5")

		_, present := off[SpecSocket]
		assert.False(t, present)
		_, stillOn := on[SpecSocket]
		assert.True(t, stillOn)
	})

	t.Run("removal keeps remaining options", func(t *testing.T) {
		t.Parallel()

		got := ActiveFacets{}.
			Toggle(FacetManufacturer, "AMD").
			Toggle(FacetManufacturer, "Intel").
			Toggle(FacetManufacturer, "AMD")

		opts, _ := got[FacetManufacturer].Options()
		assert.Equal(t, []string{"Intel"}, opts)
	})

	t.Run("range value is replaced by a fresh set", func(t *testing.T) {
		t.Parallel()

		got := ActiveFacets{}.WithRange(SpecSocket, 5).Toggle(SpecSocket, "AM5")

		opts, ok := got[SpecSocket].Options()
		require.True(t, ok)
		assert.Equal(t, []string{"AM5"}, opts)
	})
}

func TestActiveFacetsRange(t *testing.T) {
	t.Parallel()

	a := ActiveFacets{}.WithRange(FacetPrice, 500)
	v, ok := a[FacetPrice].Threshold()
	require.True(t, ok)
	assert.Equal(t, 500.0, v)
	_, ok = a[FacetPrice].Options()
	assert.False(t, ok)

	b := a.Without(FacetPrice)
	assert.Empty(t, b)
	assert.Len(t, a, 1)
}

func TestFacetDefinitionValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cat     Category
		def     FacetDefinition
		wantErr bool
	}{
		{
			name: "price range",
			cat:  CategoryGPU,
			def:  FacetDefinition{ID: FacetPrice, Kind: FacetKindRange, Range: RangeFacet{Min: 0, Max: 2000, Step: 50}},
		},
		{
			name: "spec checkbox",
			cat:  CategoryCPU,
			def:  FacetDefinition{ID: SpecSocket, Kind: FacetKindCheckbox, Checkbox: CheckboxFacet{Options: []string{"AM5"}}},
		},
		{
			name:    "spec of another category",
			cat:     CategoryCPU,
			def:     FacetDefinition{ID: SpecLength, Kind: FacetKindRange, Range: RangeFacet{Max: 1}},
			wantErr: true,
		},
		{
			name:    "min above max",
			cat:     CategoryGPU,
			def:     FacetDefinition{ID: SpecLength, Kind: FacetKindRange, Range: RangeFacet{Min: 5, Max: 1}},
			wantErr: true,
		},
		{
			name:    "empty options",
			cat:     CategoryCPU,
			def:     FacetDefinition{ID: FacetManufacturer, Kind: FacetKindCheckbox},
			wantErr: true,
		},
		{
			name:    "unknown kind",
			cat:     CategoryCPU,
			def:     FacetDefinition{ID: FacetPrice, Kind: "slider"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.def.Validate(tt.cat)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFacet)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestFacetDefinitionValue(t *testing.T) {
	t.Parallel()

	p := &Part{
		Price:        299.99,
		Manufacturer: "AMD",
		Specs:        Specs{SpecSocket: StringSpec("AM5")},
	}

	v, ok := FacetDefinition{ID: FacetPrice}.Value(p)
	require.True(t, ok)
	assert.Equal(t, NumberSpec(299.99), v)

	v, ok = FacetDefinition{ID: FacetManufacturer}.Value(p)
	require.True(t, ok)
	assert.Equal(t, "AMD", v.Text())

	v, ok = FacetDefinition{ID: SpecSocket}.Value(p)
	require.True(t, ok)
	assert.Equal(t, "AM5", v.Text())

	_, ok = FacetDefinition{ID: SpecCores}.Value(p)
	assert.False(t, ok)
}
