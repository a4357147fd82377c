// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/invowk/emberpath/cmd/emberpath"

func main() {
	cmd.Execute()
}
