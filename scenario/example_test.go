package scenario_test

import (
	"fmt"

	"github.com/arclabs/tracewright/scenario"
)

func ExampleParse() {
	data := []byte(`
suite: login-smoke
base_url: http://localhost:8080
cases:
  - name: login
    id: TC-001
    steps:
      - action: navigate
        url: /login
      - action: fill
        selector: input#username
        value: alice
      - action: fill
        selector: input#password
        value: hunter2
        sensitive: true
      - action: click
        selector: button[type=submit]
      - action: assert_url
        pattern: /dashboard
`)

	sc, err := scenario.Parse(data)
	if err != nil {
		fmt.Println("parse error:", err)
		return
	}

	fmt.Println("Suite:", sc.Suite)
	fmt.Println("Cases:", len(sc.Cases))
	fmt.Println("Steps:", len(sc.Cases[0].Steps))
	// Output:
	// Suite: login-smoke
	// Cases: 1
	// Steps: 5
}

func ExampleScenario_Validate() {
	sc := &scenario.Scenario{
		Cases: []scenario.Case{
			{Name: "broken", Steps: []scenario.Step{{Action: "teleport"}}},
		},
	}

	err := sc.Validate()
	fmt.Println(err)
	// Output:
	// case "broken" step 1: scenario: unknown action: "teleport"
}
