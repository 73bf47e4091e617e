package lang_test

import (
	"fmt"
	"os"

	"github.com/ardnew/slip/lang"
)

func Example() {
	prog, err := lang.ParseString(`
fn fib(n) {
	if (n < 2) { return n }
	return fib(n - 1) + fib(n - 2)
}
print("fib(10) = ", fib(10))
return fib(10)
`)
	if err != nil {
		fmt.Println(err)
		return
	}

	interp := lang.NewInterp(lang.WithOutput(os.Stdout))

	result, err := interp.Run(prog, lang.NewRootEnv())
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(result)

	// Output:
	// fib(10) = 55
	// 55
}
