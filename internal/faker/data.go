package faker

// First names - globally diverse.
var firstNames = []string{
	"Sarah", "Alex", "Yuki", "Priya", "Amara",
	"Diego", "Layla", "Kofi", "Morgan", "Mei",
	"Ravi", "Sofia", "Kenji", "Zara", "Jordan",
	"Aisha", "Marcus", "Elena", "Tariq", "Nia",
	"Chris", "Luna", "Omar", "Maya", "Sam",
	"Kai", "Jasmine", "Andre", "Isla", "Leo",
	"Mateo", "Lucia", "Hana", "Arjun", "Carmen",
	"Rafael", "Imani", "Vikram", "Farah", "Wren",
}

// Surnames - mix of regions to keep generated rosters varied.
var lastNames = []string{
	"Tanaka", "Chen", "Sharma", "Nguyen", "Kim",
	"Nakamura", "Patel", "Li", "Yamamoto", "Singh",
	"Okonkwo", "Mbeki", "Diallo", "Mensah", "Osei",
	"Reyes", "Mendoza", "Castillo", "Vargas", "Delgado",
	"Moreno", "Fuentes", "Navarro", "Santos", "Vega",
	"Hakim", "Khoury", "Abbasi", "Karimi", "Mansouri",
	"Ashford", "Fairchild", "Whitfield", "Harrington", "Blake",
	"Sutton", "Maxwell", "Connolly", "Bennett", "Hayes",
}

var emailDomains = []string{
	"example.com", "example.org", "example.net",
	"mail.test", "inbox.test",
}

// Organization name components for synthetic teams.
var companyWords = []string{
	"Crimson", "Hollow", "Golden", "Silver", "Frozen",
	"Iron", "Amber", "Verdant", "Twilight", "Summit",
	"Harbor", "Beacon", "Cascade", "Meridian", "Orchard",
	"Quarry", "Lantern", "Compass", "Granite", "Drift",
}

var companySuffixes = []string{
	"Labs", "Industries", "Group", "Collective", "Works",
	"Systems", "Holdings", "Partners", "Studio", "Co",
}
