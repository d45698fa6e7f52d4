package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/zfp/errs"
	"github.com/arloliu/zfp/format"
)

func TestParams_Mode(t *testing.T) {
	rate, _ := RateParams(8, format.TypeFloat64, 2, false)
	accuracy, _ := AccuracyParams(1e-3)

	tests := []struct {
		name   string
		params Params
		want   format.Mode
	}{
		{"defaults", DefaultParams(), format.ModeExpert},
		{"fixed rate", rate, format.ModeFixedRate},
		{"fixed precision", PrecisionParams(20), format.ModeFixedPrecision},
		{"full precision is the defaults", PrecisionParams(64), format.ModeExpert},
		{"zero precision keeps every plane", PrecisionParams(0), format.ModeExpert},
		{"negative precision keeps every plane", PrecisionParams(-3), format.ModeExpert},
		{"fixed accuracy", accuracy, format.ModeFixedAccuracy},
		{"reversible", ReversibleParams(), format.ModeReversible},
		{"minbits above maxbits", Params{MinBits: 10, MaxBits: 9, MaxPrec: 64, MinExp: format.MinExp}, format.ModeNull},
		{"zero maxprec", Params{MinBits: 1, MaxBits: 100, MaxPrec: 0, MinExp: format.MinExp}, format.ModeNull},
		{"maxprec above 64", Params{MinBits: 1, MaxBits: 100, MaxPrec: 65, MinExp: format.MinExp}, format.ModeNull},
		{"expert", Params{MinBits: 16, MaxBits: 300, MaxPrec: 40, MinExp: -20}, format.ModeExpert},
		{"rate with bounded precision", Params{MinBits: 64, MaxBits: 64, MaxPrec: 30, MinExp: format.MinExp}, format.ModeExpert},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.params.Mode())
		})
	}
}

func TestParams_Validate(t *testing.T) {
	require.NoError(t, DefaultParams().Validate())

	err := Params{MinBits: 5, MaxBits: 4, MaxPrec: 64}.Validate()
	require.ErrorIs(t, err, errs.ErrInvalidParams)

	err = Params{MinBits: 1, MaxBits: 4, MaxPrec: 65}.Validate()
	require.ErrorIs(t, err, errs.ErrInvalidParams)
}

func TestRateParams(t *testing.T) {
	tests := []struct {
		name     string
		rate     float64
		typ      format.ScalarType
		dims     int
		align    bool
		wantBits int
		wantRate float64
	}{
		{"double 1d rate 32", 32, format.TypeFloat64, 1, false, 128, 32},
		{"double 2d rate 0.5", 0.5, format.TypeFloat64, 2, false, 12, 0.75},
		{"float 1d tiny rate floors at header", 0.1, format.TypeFloat32, 1, false, 9, 2.25},
		{"double 1d tiny rate floors at header", 0.1, format.TypeFloat64, 1, false, 12, 3},
		{"int32 3d", 1.5, format.TypeInt32, 3, false, 96, 1.5},
		{"aligned", 5, format.TypeFloat64, 2, true, 128, 8},
		{"rounding", 2.5, format.TypeFloat32, 1, false, 10, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, got := RateParams(tt.rate, tt.typ, tt.dims, tt.align)
			assert.Equal(t, tt.wantBits, p.MinBits)
			assert.Equal(t, tt.wantBits, p.MaxBits)
			assert.Equal(t, format.MaxPrec, p.MaxPrec)
			assert.Equal(t, format.MinExp, p.MinExp)
			assert.InDelta(t, tt.wantRate, got, 1e-12)
			assert.Equal(t, format.ModeFixedRate, p.Mode())
		})
	}
}

func TestAccuracyParams(t *testing.T) {
	p, tol := AccuracyParams(1e-3)
	// 1e-3 = 0.512 * 2^-9
	assert.Equal(t, -10, p.MinExp)
	assert.InDelta(t, 1.0/1024, tol, 0)

	p, tol = AccuracyParams(1)
	assert.Equal(t, 0, p.MinExp)
	assert.InDelta(t, 1.0, tol, 0)

	p, tol = AccuracyParams(0)
	assert.Equal(t, format.MinExp, p.MinExp)
	assert.Zero(t, tol)
	assert.Equal(t, format.ModeExpert, p.Mode(), "zero tolerance reproduces the defaults")
}

func TestParams_CodeShort(t *testing.T) {
	rate, _ := RateParams(32, format.TypeFloat64, 1, false)
	accuracy, _ := AccuracyParams(1e-3)
	maxRate, _ := RateParams(512, format.TypeFloat64, 1, false)

	tests := []struct {
		name   string
		params Params
		want   uint64
	}{
		{"rate", rate, 127},
		{"largest short rate", maxRate, 2047},
		{"precision", PrecisionParams(16), 2048 + 15},
		{"reversible", ReversibleParams(), 2176},
		{"accuracy", accuracy, uint64(-10-format.MinExp) + 2177},
		{"largest short accuracy", accuracyTuple(843), format.ModeShortMax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := tt.params.Code()
			assert.Equal(t, tt.want, code)
			assert.True(t, IsShortCode(code))
			assert.Equal(t, tt.params, ParamsFromCode(code))
		})
	}
}

func TestParams_CodeLong(t *testing.T) {
	tests := []Params{
		DefaultParams(),
		{MinBits: 16, MaxBits: 300, MaxPrec: 40, MinExp: -20},
		rateTuple(2049),
		rateTuple(format.MaxBits),
		accuracyTuple(844),
		{MinBits: 1, MaxBits: format.MaxBits, MaxPrec: 64, MinExp: -16000},
	}

	for _, p := range tests {
		t.Run(p.String(), func(t *testing.T) {
			code := p.Code()
			require.Greater(t, code, uint64(format.ModeShortMax))
			assert.Equal(t, uint64(0xfff), code&0xfff)
			assert.False(t, IsShortCode(code))

			back := ParamsFromCode(code)
			assert.Equal(t, p, back)
			assert.Equal(t, p.Mode(), back.Mode())
		})
	}
}

func TestParams_CodeRoundTripSetters(t *testing.T) {
	var all []Params
	for bits := 1; bits <= format.MaxBits; bits += 97 {
		all = append(all, rateTuple(bits))
	}
	for prec := 1; prec <= 64; prec++ {
		all = append(all, PrecisionParams(prec))
	}
	for _, tol := range []float64{0, 1e-300, 1e-12, 1e-3, 0.5, 1, 3, 1e10, 1e250} {
		p, _ := AccuracyParams(tol)
		all = append(all, p)
	}
	all = append(all, ReversibleParams(), DefaultParams())

	for _, p := range all {
		back := ParamsFromCode(p.Code())
		require.Equal(t, p, back, "params %s", p)
		require.Equal(t, p.Mode(), back.Mode())
	}
}

func TestParamsFromCode_Malformed(t *testing.T) {
	// precision codes above 64 planes decode to an invalid tuple
	assert.Equal(t, format.ModeNull, ParamsFromCode(2048+100).Mode())
}
