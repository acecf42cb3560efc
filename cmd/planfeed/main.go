/*
Copyright © 2026 Planfeed Authors
SPDX-License-Identifier: Apache-2.0
*/

package main

import "github.com/planfeed/planfeed/pkg/cli"

func main() {
	cli.Execute()
}
