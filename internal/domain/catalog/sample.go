package catalog

// sampleCourses is the catalog served when no catalog file is configured.
var sampleCourses = []Course{
	{
		ID:          "1",
		Title:       "Introduction to Machine Learning",
		Description: "Learn the basics of machine learning algorithms and applications.",
		Instructor:  "Dr. Jane Smith",
		Duration:    8,
		Level:       LevelBeginner,
		Subject:     "Computer Science",
		Provider:    "Coursera",
		URL:         "https://coursera.org/course/ml-intro",
	},
	{
		ID:          "2",
		Title:       "Advanced Python Programming",
		Description: "Deep dive into Python programming with advanced concepts.",
		Instructor:  "Prof. John Doe",
		Duration:    12,
		Level:       LevelAdvanced,
		Subject:     "Computer Science",
		Provider:    "edX",
		URL:         "https://edx.org/course/python-adv",
	},
	{
		ID:          "3",
		Title:       "Data Structures and Algorithms",
		Description: "Master fundamental data structures and algorithms.",
		Instructor:  "Dr. Alice Johnson",
		Duration:    10,
		Level:       LevelIntermediate,
		Subject:     "Computer Science",
		Provider:    "Udacity",
		URL:         "https://udacity.com/course/dsa",
	},
	{
		ID:          "4",
		Title:       "Calculus I",
		Description: "Introduction to differential and integral calculus.",
		Instructor:  "Prof. Bob Wilson",
		Duration:    16,
		Level:       LevelBeginner,
		Subject:     "Mathematics",
		Provider:    "Khan Academy",
		URL:         "https://khanacademy.org/calculus1",
	},
	{
		ID:          "5",
		Title:       "Web Development with React",
		Description: "Build modern web applications using React.js.",
		Instructor:  "Ms. Carol Brown",
		Duration:    6,
		Level:       LevelIntermediate,
		Subject:     "Computer Science",
		Provider:    "freeCodeCamp",
		URL:         "https://freecodecamp.org/react",
	},
}

// Sample returns the built-in five-course catalog.
func Sample() *Catalog {
	c, err := New(sampleCourses)
	if err != nil {
		panic(err)
	}
	return c
}
