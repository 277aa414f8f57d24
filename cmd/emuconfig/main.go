// FILE: lixenwraith/emuconfig/cmd/emuconfig/main.go
package main

func main() {
	Execute()
}
