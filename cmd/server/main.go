package main

import (
	"log"

	"github.com/lintang-b-s/osm-places/pkg/di"
)

//	@title			osm-places API
//	@version		1.0
//	@description	OpenStreetMap objects as ActivityStreams Place documents.
//	@license.name	Open Database License (ODbL) v1.0
//	@license.url	https://opendatacommons.org/licenses/odbl/1-0/
//	@BasePath		/

func main() {
	server, cleanup, err := di.InitializePlacesService()
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	if err := server.Wait(); err != nil {
		server.Log.Error(err.Error())
	}
}
