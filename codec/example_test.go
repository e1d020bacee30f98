package codec_test

import (
	"fmt"
	"slices"

	"github.com/rbaliyan/lazykit/codec"
)

func ExampleEncodeString() {
	out, err := codec.EncodeString("hello", codec.Hex, "")
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println(out)
	// Output: 68656c6c6f
}

func ExampleRegistry_Register() {
	r := codec.MustNew()

	reverse := func(data []byte, _ string) ([]byte, error) {
		out := slices.Clone(data)
		slices.Reverse(out)
		return out, nil
	}
	if err := r.Register("reverse", reverse, reverse); err != nil {
		fmt.Println("Error:", err)
		return
	}

	out, _ := r.EncodeString("Hello", "reverse", "")
	fmt.Println(out)

	// Built-in names cannot be replaced.
	err := r.Register(codec.Hex, reverse, reverse)
	fmt.Println(codec.IsDuplicateCodec(err))
	// Output:
	// olleH
	// true
}
