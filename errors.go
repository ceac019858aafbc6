package cocluster

import "errors"

// ErrConfig reports an illegal parameter combination, a missing required
// field, or an out-of-range value. Configuration errors are detected before
// any clustering computation runs and are never downgraded to warnings.
var ErrConfig = errors.New("invalid configuration")

// ErrContract reports a collaborator returning a result inconsistent with
// its declared contract, such as a label vector of the wrong length or a
// co-occurrence matrix of the wrong dimension. Contract violations are
// defects, not user errors; they are fatal to the current run only.
var ErrContract = errors.New("collaborator contract violation")
