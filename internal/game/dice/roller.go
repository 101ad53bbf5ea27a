package dice

// Roll rolls expr.Dice six-sided dice with src and applies the modifier.
//
// Precondition: src must be non-nil; expr.Dice >= 0.
// Postcondition: len(result.Dice) == expr.Dice;
//
//	result.Total() == sum(result.Dice) + result.Modifier.
func Roll(expr Expression, src Source) RollResult {
	rolled := make([]int, expr.Dice)
	for i := range rolled {
		rolled[i] = src.Intn(6) + 1
	}
	notation := expr.String()
	if notation == "" {
		notation = "+0"
	}
	return RollResult{
		Expression: notation,
		Dice:       rolled,
		Modifier:   expr.Modifier,
	}
}

// RollExpr parses expr and rolls it using src in a single call.
//
// Precondition: expr must be a valid dice expression string; src must be non-nil.
// Postcondition: Returns a RollResult or a parse error.
func RollExpr(expr string, src Source) (RollResult, error) {
	e, err := ParseExpressionStrict(expr)
	if err != nil {
		return RollResult{}, err
	}
	return Roll(e, src), nil
}
