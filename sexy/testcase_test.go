package sexy

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestExtractTestCases_BasicTest(t *testing.T) {
	markdown := `# Binary expressions

## Test: +
` + "```minic-expr" + `
1 + 2
` + "```" + `
` + "```ast" + `
(binary "+" (integer 1) (integer 2))
` + "```" + `

## Test: -
` + "```minic-expr" + `
1 - 2
` + "```" + `
` + "```ast" + `
(binary "-" (integer 1) (integer 2))
` + "```"

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 2)

	tc1 := testCases[0]
	be.Equal(t, tc1.Name, "+")
	be.Equal(t, tc1.Input, "1 + 2")
	be.Equal(t, tc1.InputType, InputTypeMiniCExpr)
	be.Equal(t, len(tc1.Assertions), 1)
	be.Equal(t, tc1.Assertions[0].Type, AssertionTypeAST)
	be.Equal(t, tc1.Assertions[0].Content, `(binary "+" (integer 1) (integer 2))`)
	be.Equal(t, tc1.Assertions[0].ParsedSexy.String(), `(binary "+" (integer 1) (integer 2))`)

	tc2 := testCases[1]
	be.Equal(t, tc2.Name, "-")
	be.Equal(t, tc2.Input, "1 - 2")
	be.Equal(t, tc2.InputType, InputTypeMiniCExpr)
	be.Equal(t, tc2.Assertions[0].ParsedSexy.String(), `(binary "-" (integer 1) (integer 2))`)
}

func TestExtractTestCases_ProgramWithAllAssertionTypes(t *testing.T) {
	markdown := `## Test: return zero
` + "```minic-program" + `
int main() {
    return 0;
}
` + "```" + `
` + "```ast" + `
(program (func "main" int () ...))
` + "```" + `
` + "```jasmin" + `
	ldc 0
	ireturn
` + "```" + `
` + "```compile-error" + `
unknown variable 'x'
` + "```"

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 1)

	tc := testCases[0]
	be.Equal(t, tc.Name, "return zero")
	be.Equal(t, tc.Input, "int main() {\n    return 0;\n}")
	be.Equal(t, tc.InputType, InputTypeMiniCProgram)
	be.Equal(t, len(tc.Assertions), 3)

	be.Equal(t, tc.Assertions[0].Type, AssertionTypeAST)
	be.True(t, tc.Assertions[0].ParsedSexy != nil)

	// Only ast assertions are parsed as S-expressions.
	be.Equal(t, tc.Assertions[1].Type, AssertionTypeJasmin)
	be.Equal(t, tc.Assertions[1].Content, "\tldc 0\n\tireturn")
	be.True(t, tc.Assertions[1].ParsedSexy == nil)

	be.Equal(t, tc.Assertions[2].Type, AssertionTypeCompileError)
	be.Equal(t, tc.Assertions[2].Content, "unknown variable 'x'")
	be.True(t, tc.Assertions[2].ParsedSexy == nil)
}

func TestExtractTestCases_AssertionLineNumbers(t *testing.T) {
	markdown := "## Test: lines\n" + // 1
		"```minic-expr\n" + // 2
		"x\n" + // 3
		"```\n" + // 4
		"```ast\n" + // 5
		"(ident \"x\")\n" + // 6
		"```\n"

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, testCases[0].Assertions[0].Line, 6)
}

func TestExtractTestCases_EmptyFile(t *testing.T) {
	testCases, err := ExtractTestCases("")
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 0)
}

func TestExtractTestCases_NoTestCases(t *testing.T) {
	markdown := `# Some document

This is just regular markdown content.

## Regular heading

No test cases here.`

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 0)
}

func TestExtractTestCases_InvalidSexyAssertion(t *testing.T) {
	markdown := `## Test: invalid sexy
` + "```minic-expr" + `
1 + 2
` + "```" + `
` + "```ast" + `
(unclosed list
` + "```"

	_, err := ExtractTestCases(markdown)
	be.Err(t, err, "failed to parse Sexy assertion in test 'invalid sexy'")
	be.Err(t, err, "line 6")
}

func TestExtractTestCases_FenceOutsideTestCase(t *testing.T) {
	tests := []struct {
		name      string
		markdown  string
		fenceType string
	}{
		{
			"minic-expr fence outside test",
			"# Document\n\n```minic-expr\n1 + 2\n```\n",
			"minic-expr",
		},
		{
			"minic-program fence outside test",
			"# Document\n\n```minic-program\nvoid main() {}\n```\n",
			"minic-program",
		},
		{
			"ast fence outside test",
			"# Document\n\n```ast\n(binary \"+\" 1 2)\n```\n",
			"ast",
		},
		{
			"jasmin fence outside test",
			"# Document\n\n```jasmin\n\tireturn\n```\n",
			"jasmin",
		},
		{
			"compile-error fence outside test",
			"# Document\n\n```compile-error\nunknown function\n```\n",
			"compile-error",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ExtractTestCases(test.markdown)
			be.Err(t, err, "line 4: "+test.fenceType+" fence found outside of test case")
		})
	}
}

func TestExtractTestCases_UnknownFenceOutsideTest(t *testing.T) {
	markdown := `# Document with unknown code block

` + "```go" + `
func main() {}
` + "```"

	_, err := ExtractTestCases(markdown)
	be.Err(t, err, "unknown fence language 'go' found outside of test case")
}

func TestExtractTestCases_UnknownFenceLanguageInTest(t *testing.T) {
	markdown := `## Test: with unknown fence
` + "```minic-expr" + `
1 + 2
` + "```" + `
` + "```ast" + `
(binary "+" (integer 1) (integer 2))
` + "```" + `

` + "```shell" + `
echo "more code"
` + "```"

	_, err := ExtractTestCases(markdown)
	be.Err(t, err, "unknown fence language 'shell' in test 'with unknown fence'")
}

func TestExtractTestCases_TestMissingInputFence(t *testing.T) {
	markdown := `## Test: no input
` + "```ast" + `
(binary "+" 1 2)
` + "```"

	_, err := ExtractTestCases(markdown)
	be.Err(t, err, "test 'no input' has no input fence")
}

func TestExtractTestCases_TestMissingAssertionFence(t *testing.T) {
	markdown := `## Test: no assertions
` + "```minic-expr" + `
1 + 2
` + "```"

	_, err := ExtractTestCases(markdown)
	be.Err(t, err, "test 'no assertions' has no assertion fences")
}

func TestExtractTestCases_MultipleInputFences(t *testing.T) {
	markdown := `## Test: multiple inputs
` + "```minic-expr" + `
1 + 2
` + "```" + `
` + "```minic-program" + `
void main() {}
` + "```" + `
` + "```ast" + `
(binary "+" 1 2)
` + "```"

	_, err := ExtractTestCases(markdown)
	be.Err(t, err, "multiple input fences found in test 'multiple inputs'")
}

func TestExtractTestCases_AllowFencesWithoutLanguage(t *testing.T) {
	markdown := `# Document with generic code block

` + "```" + `
some code without language
` + "```" + `

## Test: valid test
` + "```minic-expr" + `
1 + 2
` + "```" + `
` + "```ast" + `
(binary "+" ...)
` + "```" + `

` + "```" + `
more code without language in test
` + "```"

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 1)
	be.Equal(t, testCases[0].Name, "valid test")
	be.Equal(t, testCases[0].Input, "1 + 2")
	be.Equal(t, len(testCases[0].Assertions), 1)
}

func TestExtractTestCases_ErrorInSecondTest(t *testing.T) {
	markdown := `## Test: first test
` + "```minic-expr" + `
1 + 2
` + "```" + `
` + "```ast" + `
(binary "+" ...)
` + "```" + `

## Test: second test missing input
` + "```ast" + `
(binary "-" ...)
` + "```"

	_, err := ExtractTestCases(markdown)
	be.Err(t, err, "test 'second test missing input' has no input fence")
}

func TestExtractTestCases_NonTestHeadingsDoNotSplit(t *testing.T) {
	markdown := `## Test: spans a heading
` + "```minic-expr" + `
x
` + "```" + `

### Notes

` + "```ast" + `
(ident "x")
` + "```"

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 1)
	be.Equal(t, len(testCases[0].Assertions), 1)
}
