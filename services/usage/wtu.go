// Package usage converts raw token counts into WTU (weighted token units),
// the normalized billing unit shared with the main LinkyBoard service.
package usage

// TokensPerWTU is the base conversion rate. Model-specific multipliers are
// applied upstream by the model catalog, not here.
const TokensPerWTU = 1000

// FromTokens converts token counts to WTU. Any non-zero usage costs at
// least one unit.
func FromTokens(inputTokens, outputTokens int) int {
	total := inputTokens + outputTokens
	if total <= 0 {
		return 0
	}
	units := total / TokensPerWTU
	if units < 1 {
		return 1
	}
	return units
}
