package main

import (
	"log"
	"os"

	"github.com/parquet-go/parquet-go"
)

type Student struct {
	PK      int64  `parquet:"pk"`
	Name    string `parquet:"name"`
	Age     int64  `parquet:"age"`
	ClassFK int64  `parquet:"class_fk"`
}

func main() {
	writeCSV("students.csv",
		"pk,name,age,class_fk\n"+
			"1,alice,30,1\n"+
			"2,bob,25,2\n"+
			"3,carol,35,1\n"+
			"4,dave,12,2\n")

	writeCSV("classes.csv",
		"pk,name\n"+
			"1,math\n"+
			"2,art\n")

	students := []Student{
		{PK: 1, Name: "alice", Age: 30, ClassFK: 1},
		{PK: 2, Name: "bob", Age: 25, ClassFK: 2},
		{PK: 3, Name: "carol", Age: 35, ClassFK: 1},
		{PK: 4, Name: "dave", Age: 12, ClassFK: 2},
	}

	file, err := os.Create("students.parquet")
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[Student](file)
	defer writer.Close()

	if _, err := writer.Write(students); err != nil {
		log.Fatal(err)
	}

	log.Println("Generated students.csv, classes.csv and students.parquet")
}

func writeCSV(name, content string) {
	if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
		log.Fatal(err)
	}
}
