package commands

// NewReconcilerForTest exports newReconciler for testing.
var NewReconcilerForTest = newReconciler //nolint:gochecknoglobals // test export

// NewValidatorForTest exports newValidator for testing.
var NewValidatorForTest = newValidator //nolint:gochecknoglobals // test export

// ValidationProfile exports validationProfile for testing.
type ValidationProfile = validationProfile
