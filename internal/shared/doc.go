// Package shared holds helpers used by more than one package's tests.
//
// The testutil subpackage provides:
//
//   - a capturing slog handler for asserting on structured log records
//   - builders for station survey workbooks written with excelize
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    logger, logs := testutil.NewTestLogger(t)
//	    path := testutil.WriteSurvey(t, t.TempDir(), testutil.SurveyRows(...))
//	    ...
//	    testutil.AssertLogContains(t, logs, slog.LevelWarn, "treated as 0")
//	}
//
// Nothing here may import the packages under test.
package shared
