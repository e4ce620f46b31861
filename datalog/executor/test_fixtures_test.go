package executor

import (
	"github.com/wbrown/janus-triples/datalog"
	"github.com/wbrown/janus-triples/datalog/storage"
)

// movieDB is the two-fact store used throughout the examples
func movieDB() *storage.Database {
	return storage.NewDatabase([]datalog.Triple{
		datalog.NewTriple(1, "movie/title", "Alien"),
		datalog.NewTriple(1, "movie/year", 1979),
	})
}

// castDB has several movies, people and a self-referencing fact
func castDB() *storage.Database {
	return storage.NewDatabase([]datalog.Triple{
		datalog.NewTriple(1, "movie/title", "Alien"),
		datalog.NewTriple(1, "movie/year", 1979),
		datalog.NewTriple(1, "movie/director", 100),
		datalog.NewTriple(1, "movie/cast", 101),
		datalog.NewTriple(2, "movie/title", "Aliens"),
		datalog.NewTriple(2, "movie/year", 1986),
		datalog.NewTriple(2, "movie/director", 102),
		datalog.NewTriple(2, "movie/cast", 101),
		datalog.NewTriple(3, "movie/title", "Blade Runner"),
		datalog.NewTriple(3, "movie/year", 1982),
		datalog.NewTriple(3, "movie/director", 100),
		datalog.NewTriple(100, "person/name", "Ridley Scott"),
		datalog.NewTriple(101, "person/name", "Sigourney Weaver"),
		datalog.NewTriple(102, "person/name", "James Cameron"),
		datalog.NewTriple(7, "same", 7),
	})
}
