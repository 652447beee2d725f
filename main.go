// SPDX-License-Identifier: MPL-2.0

package main

import cmd "smlaunch-cli/cmd/smlaunch"

func main() {
	cmd.Execute()
}
