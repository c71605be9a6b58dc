package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeAggregate(t *testing.T) {
	t.Run("avg of 10 20 30 is 20", func(t *testing.T) {
		got, err := computeAggregate([]int{10, 20, 30}, ModeAvg)

		require.NoError(t, err)
		assert.Equal(t, "20", got)
	})

	t.Run("sum of 10 20 30 is 60", func(t *testing.T) {
		got, err := computeAggregate([]int{10, 20, 30}, ModeSum)

		require.NoError(t, err)
		assert.Equal(t, "60", got)
	})

	t.Run("count of 10 20 30 is 3", func(t *testing.T) {
		got, err := computeAggregate([]int{10, 20, 30}, ModeCount)

		require.NoError(t, err)
		assert.Equal(t, "3", got)
	})

	t.Run("distinct count of 1 1 2 is 2", func(t *testing.T) {
		got, err := computeAggregate([]int{1, 1, 2}, ModeDistinctCount)

		require.NoError(t, err)
		assert.Equal(t, "2", got)
	})

	t.Run("empty input is 0 for every mode", func(t *testing.T) {
		for _, mode := range []AggregationMode{ModeSum, ModeAvg, ModeCount, ModeDistinctCount} {
			got, err := computeAggregate([]int{}, mode)

			require.NoError(t, err)
			assert.Equal(t, "0", got, mode.String())
		}
	})

	t.Run("sum of values wider than 34 digits stays exact", func(t *testing.T) {
		got, err := computeAggregate([]string{"1e40", "1"}, ModeSum)

		require.NoError(t, err)
		assert.Equal(t, "10000000000000000000000000000000000000001", got)
	})

	t.Run("avg of values wider than 34 digits stays exact", func(t *testing.T) {
		got, err := computeAggregate([]string{"1e40", "1"}, ModeAvg)

		require.NoError(t, err)
		assert.Equal(t, "5000000000000000000000000000000000000000.5", got)
	})

	t.Run("count keeps duplicates", func(t *testing.T) {
		got, err := computeAggregate([]string{"a", "a", "b"}, ModeCount)

		require.NoError(t, err)
		assert.Equal(t, "3", got)
	})

	t.Run("distinct count works on non-numeric values", func(t *testing.T) {
		got, err := computeAggregate([]string{"a", "a", "b"}, ModeDistinctCount)

		require.NoError(t, err)
		assert.Equal(t, "2", got)
	})

	t.Run("sum is exact for decimal fractions", func(t *testing.T) {
		got, err := computeAggregate([]float64{0.1, 0.2}, ModeSum)

		require.NoError(t, err)
		assert.Equal(t, "0.3", got)
	})

	t.Run("sum rounds half up to two places", func(t *testing.T) {
		got, err := computeAggregate([]string{"1.001", "0.004"}, ModeSum)

		require.NoError(t, err)
		assert.Equal(t, "1.01", got)
	})

	t.Run("avg strips trailing zeros", func(t *testing.T) {
		got, err := computeAggregate([]int{1, 2}, ModeAvg)

		require.NoError(t, err)
		assert.Equal(t, "1.5", got)
	})

	t.Run("avg rounds half up to two places", func(t *testing.T) {
		got, err := computeAggregate([]int{1, 1, 2}, ModeAvg)

		require.NoError(t, err)
		assert.Equal(t, "1.33", got)
	})

	t.Run("avg of zeros is 0", func(t *testing.T) {
		got, err := computeAggregate([]string{"0", "0.00"}, ModeAvg)

		require.NoError(t, err)
		assert.Equal(t, "0", got)
	})

	t.Run("with non-numeric value for sum returns arithmetic error", func(t *testing.T) {
		_, err := computeAggregate([]string{"10", "ten"}, ModeSum)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrArithmetic)
		assert.Contains(t, err.Error(), "value 1")
	})

	t.Run("with non-numeric value for avg returns arithmetic error", func(t *testing.T) {
		_, err := computeAggregate([]bool{true}, ModeAvg)

		assert.ErrorIs(t, err, ErrArithmetic)
	})

	t.Run("with unset mode returns configuration error", func(t *testing.T) {
		_, err := computeAggregate([]int{1}, AggregationMode(0))

		assert.ErrorIs(t, err, ErrConfiguration)
	})
}

func TestParseAggregationMode(t *testing.T) {
	t.Run("parses every mode code", func(t *testing.T) {
		for _, mode := range []AggregationMode{ModeSum, ModeAvg, ModeCount, ModeDistinctCount} {
			parsed, err := ParseAggregationMode(mode.String())

			require.NoError(t, err)
			assert.Equal(t, mode, parsed)
		}
	})

	t.Run("with empty mode returns error", func(t *testing.T) {
		_, err := ParseAggregationMode("")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "aggregation mode is required")
	})

	t.Run("with unknown mode returns error", func(t *testing.T) {
		_, err := ParseAggregationMode("median")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid aggregation mode")
	})
}

func TestParseMatchPolicy(t *testing.T) {
	t.Run("accepts lower and upper case", func(t *testing.T) {
		and, err := ParseMatchPolicy("and")
		require.NoError(t, err)
		or, err := ParseMatchPolicy("OR")
		require.NoError(t, err)

		assert.Equal(t, MatchAnd, and)
		assert.Equal(t, MatchOr, or)
	})

	t.Run("with unknown policy returns error", func(t *testing.T) {
		_, err := ParseMatchPolicy("xor")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid match policy")
	})
}
