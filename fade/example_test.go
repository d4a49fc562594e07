// SPDX-License-Identifier: EPL-2.0

package fade_test

import (
	"fmt"

	"github.com/ik5/audring/fade"
)

func ExampleController() {
	c := fade.New(200) // 4-frame ramp

	c.Trigger()
	var out []float32
	for range 5 {
		out = append(out, c.Apply(1))
	}
	fmt.Println(out)
	fmt.Println("faded:", c.Faded(), "muted:", c.Muted())
	// Output:
	// [1 0.75 0.5 0.25 0]
	// faded: true muted: true
}
