// cmd/papercalc/main.go
package main

import (
	"papercalc/internal/appshell"
	"papercalc/internal/calcapp"
)

func main() { appshell.Main(calcapp.RunContext) }
