package hstring_test

import (
	"fmt"

	"github.com/AdrianWangs/go-hstring/pkg/hstring"
)

func ExampleString_UniqueWords() {
	s := hstring.FromString("The cat sat on the MAT. The cat ran.")
	fmt.Println(s.UniqueWords().Strings())
	// Output: [cat mat on ran sat the]
}

func ExampleString_Join() {
	sep := hstring.FromString(", ")
	joined := sep.Join([]hstring.String{
		hstring.FromString("a"),
		hstring.FromString("b"),
		hstring.FromString("c"),
	})
	fmt.Println(joined)
	// Output: a, b, c
}

func ExampleString_Trim() {
	s := hstring.FromString("   padded   ")
	s.Trim()
	fmt.Printf("%q\n", s.String())
	// Output: "padded"
}
