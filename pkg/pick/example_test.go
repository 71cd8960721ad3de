package pick_test

import (
	stderrors "errors"
	"fmt"

	"github.com/Taxolotl/vintage-story-mod-api/pkg/errors"
	"github.com/Taxolotl/vintage-story-mod-api/pkg/pick"
)

func ExampleOne() {
	versions := []string{"1.19.4"}
	v, _ := pick.One(versions)
	fmt.Println(v)
	// Output: 1.19.4
}

func ExampleOne_empty() {
	_, err := pick.One([]int{})
	fmt.Println(stderrors.Is(err, errors.ErrEmptyCollection))
	// Output: true
}
