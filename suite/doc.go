// Package suite is the instrumentation core: it runs browser test suites as
// a trace tree (suite span, test-case spans, action spans), aggregates
// pass/fail counts, redacts sensitive recorded values, and emits a
// trace-correlated error log for every failed test case.
//
// A Suite owns one browser session and one telemetry pipeline for the
// duration of a run. Test cases execute strictly one at a time:
//
//	s, err := suite.Start(ctx, suite.Config{SuiteName: "smoke"}, chromedriver.New())
//	if err != nil { ... }
//	defer s.Close(ctx)
//
//	err = s.Run(ctx, suite.CaseOptions{Name: "login", ID: "TC-001"}, func(ctx context.Context, tc *suite.TestCase) error {
//		if err := tc.Navigate(ctx, "http://localhost:8080/login"); err != nil {
//			return err
//		}
//		return tc.AssertVisible(ctx, "h1")
//	})
//
// Run never swallows the body's failure: the returned error is the body's
// error, and the case span plus one correlated error log are the only other
// failure signals.
package suite
