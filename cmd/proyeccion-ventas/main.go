package main

import "github.com/PauloAguilarSoliz/proyeccion-ventas/internal/cli"

func main() {
	cli.Execute()
}
