package seeder

func Defaults() []Seeder {
	return []Seeder{
		EmployerSeeder{},
		StudentSeeder{},
	}
}
