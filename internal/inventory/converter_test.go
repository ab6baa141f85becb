package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertIdentity(t *testing.T) {
	f := setup(t)
	conv := f.svc.Converter()

	for _, q := range []float64{0, 1, 2.5, 1000, 0.0001} {
		assert.Equal(t, q, conv.Convert(q, f.kilo.ID, f.kilo.ID))
	}
}

func TestConvertDirectAndInverse(t *testing.T) {
	f := setup(t)
	conv := f.svc.Converter()

	// Stored factor: g -> kg = 0.001
	assert.InDelta(t, 2.0, conv.Convert(2000, f.gram.ID, f.kilo.ID), 1e-9)

	// Inverse derived from the same stored row
	assert.InDelta(t, 2000.0, conv.Convert(2, f.kilo.ID, f.gram.ID), 1e-9)
}

func TestConvertRoundTrip(t *testing.T) {
	f := setup(t)
	conv := f.svc.Converter()

	got := conv.Convert(conv.Convert(2000, f.gram.ID, f.kilo.ID), f.kilo.ID, f.gram.ID)
	assert.InDelta(t, 2000.0, got, 1e-6)

	got = conv.Convert(conv.Convert(750, f.milli.ID, f.liter.ID), f.liter.ID, f.milli.ID)
	assert.InDelta(t, 750.0, got, 1e-6)
}

func TestConvertFailOpenReturnsOriginal(t *testing.T) {
	f := setup(t)
	conv := f.svc.Converter()

	// No path between weight and volume units is stored
	assert.Equal(t, 42.0, conv.Convert(42, f.gram.ID, f.liter.ID))
}

func TestConvertStrictFailsWithoutPath(t *testing.T) {
	f := setup(t)
	conv := f.svc.Converter()

	_, err := conv.ConvertStrict(42, f.gram.ID, f.liter.ID)
	require.Error(t, err)
	var nce *NoConversionError
	require.ErrorAs(t, err, &nce)
	assert.Equal(t, f.gram.ID, nce.FromUnitID)
	assert.Equal(t, f.liter.ID, nce.ToUnitID)

	got, err := conv.ConvertStrict(500, f.gram.ID, f.kilo.ID)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, got, 1e-9)
}

func TestAddFactorValidation(t *testing.T) {
	f := setup(t)
	conv := f.svc.Converter()

	_, err := conv.AddFactor(f.piece.ID, f.kilo.ID, 0)
	assert.True(t, IsValidation(err))

	_, err = conv.AddFactor(f.piece.ID, f.kilo.ID, -2)
	assert.True(t, IsValidation(err))

	_, err = conv.AddFactor(f.piece.ID, f.piece.ID, 1)
	assert.True(t, IsValidation(err))

	cf, err := conv.AddFactor(f.piece.ID, f.kilo.ID, 0.05)
	require.NoError(t, err)
	assert.Equal(t, 0.05, cf.Factor)

	assert.InDelta(t, 0.5, conv.Convert(10, f.piece.ID, f.kilo.ID), 1e-9)
}
