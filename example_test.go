package patstream_test

import (
	"fmt"

	"github.com/coregx/patstream"
)

// ExampleCompile demonstrates basic pattern compilation and searching.
func ExampleCompile() {
	p, err := patstream.Compile(`colou?r`)
	if err != nil {
		panic(err)
	}

	fmt.Println(p.FindAllString("color or colour?", -1))
	// Output: [color colour]
}

// ExamplePattern_Allocate feeds a tokenizer one rune at a time.
func ExamplePattern_Allocate() {
	p := patstream.MustCompile(`[a-z_][a-z0-9_]*`)
	t := p.Allocate()
	for _, r := range "foo_1 = 2" {
		if t.Write(r); t.Done() {
			break
		}
	}
	fmt.Println(t.Close())
	// Output: 5
}

// ExamplePattern_FindIndex demonstrates finding match positions.
func ExamplePattern_FindIndex() {
	p := patstream.MustCompile(`[0-9]+`)
	loc := p.FindIndex([]byte("age: 42"))
	fmt.Printf("Match at [%d:%d]\n", loc[0], loc[1])
	// Output: Match at [5:7]
}

// ExamplePattern_Split splits on a separator pattern.
func ExamplePattern_Split() {
	p := patstream.MustCompile(`, *`)
	fmt.Printf("%q\n", p.Split("a, b,c", -1))
	// Output: ["a" "b" "c"]
}

// ExampleQuoteMeta escapes text for use as a literal pattern.
func ExampleQuoteMeta() {
	fmt.Println(patstream.QuoteMeta("1+1=2?"))
	// Output: 1\+1=2\?
}

// ExampleCompileWithConfig demonstrates custom configuration.
func ExampleCompileWithConfig() {
	config := patstream.DefaultConfig()
	config.MaxRepeat = 10

	_, err := patstream.CompileWithConfig(`a{20}`, config)
	fmt.Println(err)
	// Output: error parsing pattern: invalid repeat count: `a{20}`
}
