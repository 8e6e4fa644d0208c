package client

import loanDomain "prestoras-backend/internal/domain/loan"

// Classify derives a client's behavioral classification from their full loan
// history. Total function, exact precedence:
//
//  1. no loans → REGULAR
//  2. zero defaulting/refinanced and at least one completed → PUNCTUAL
//  3. defaulting/refinanced count ≥ 50% of all loans → SEVERELY_DEFAULTING
//  4. any defaulting/refinanced under the threshold → DEFAULTING
//  5. otherwise → REGULAR
func Classify(loans []loanDomain.Loan) Classification {
	if len(loans) == 0 {
		return ClassificationRegular
	}

	var defaulting, completed int
	for _, l := range loans {
		switch l.Status {
		case loanDomain.StatusDefaulting, loanDomain.StatusRefinanced:
			defaulting++
		case loanDomain.StatusCompleted:
			completed++
		}
	}

	switch {
	case defaulting == 0 && completed > 0:
		return ClassificationPunctual
	case defaulting*2 >= len(loans): // ≥ 50%, integer-exact
		return ClassificationSeverelyDefaulting
	case defaulting > 0:
		return ClassificationDefaulting
	default:
		return ClassificationRegular
	}
}
