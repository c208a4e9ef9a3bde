package people

// SeedData returns the demo dataset the dashboard starts with.
// Each call returns fresh records.
func SeedData() map[Kind][]Record {
	student := func(id int, code, name, email, phone string, grade int, class, address string) Record {
		return Record{ID: id, Kind: KindStudent, Fields: Fields{
			"student_id": code, "name": name, "email": email, "phone": phone,
			"grade": grade, "class": class, "address": address, "photo": DefaultPhoto,
		}}
	}
	teacher := func(id int, code, name, email, phone, address string, subjects, classes []string) Record {
		return Record{ID: id, Kind: KindTeacher, Fields: Fields{
			"teacher_id": code, "name": name, "email": email, "phone": phone, "address": address,
			"subjects": subjects, "classes": classes, "photo": DefaultPhoto,
		}}
	}
	parent := func(id int, name, email, phone, address string, students []string) Record {
		return Record{ID: id, Kind: KindParent, Fields: Fields{
			"name": name, "email": email, "phone": phone, "address": address, "students": students,
		}}
	}

	return map[Kind][]Record{
		KindStudent: {
			student(1, "1234567890", "John Doe", "john@doe.com", "1234567890", 5, "1B", "123 Main St, Anytown, USA"),
			student(2, "1234567891", "Jane Doe", "jane@doe.com", "1234567891", 5, "5A", "123 Main St, Anytown, USA"),
			student(3, "1234567892", "Mike Geller", "mike@geller.com", "1234567892", 5, "5A", "123 Main St, Anytown, USA"),
			student(4, "1234567893", "Jay French", "jay@gmail.com", "1234567893", 5, "5A", "123 Main St, Anytown, USA"),
			student(5, "1234567894", "Jane Smith", "jane@gmail.com", "1234567894", 4, "4C", "45 Oak Ave, Anytown, USA"),
		},
		KindTeacher: {
			teacher(1, "1234567890", "John Doe", "john@doe.com", "1234567890", "123 Main St, Anytown, USA",
				[]string{"Math", "Geometry"}, []string{"1B", "2A", "3C"}),
			teacher(2, "1234567891", "Jane Doe", "jane@doe.com", "1234567891", "123 Main St, Anytown, USA",
				[]string{"Physics", "Chemistry"}, []string{"5A", "4B", "3C"}),
			teacher(3, "1234567892", "Mike Geller", "mike@geller.com", "1234567892", "123 Main St, Anytown, USA",
				[]string{"Biology"}, []string{"5A", "4B", "3C"}),
			teacher(4, "1234567893", "Jay French", "jay@gmail.com", "1234567893", "123 Main St, Anytown, USA",
				[]string{"History"}, []string{"5A", "4B", "3C"}),
		},
		KindParent: {
			parent(1, "John Doe", "john@doe.com", "1234567890", "123 Main St, Anytown, USA", []string{"Sarah Brewer"}),
			parent(2, "Jane Doe", "jane@doe.com", "1234567891", "123 Main St, Anytown, USA", []string{"Cecilia Bradley"}),
			parent(3, "Mike Geller", "mike@geller.com", "1234567892", "123 Main St, Anytown, USA", []string{"Fanny Williams", "Mary Williams"}),
		},
	}
}
