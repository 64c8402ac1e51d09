package registry

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"

	"github.com/go-faker/faker/v4"
	"github.com/go-faker/faker/v4/pkg/options"
)

// Capability produces one value. Faker-backed capabilities draw from
// faker's package-level source and ignore the rng; curated-list
// capabilities draw from the request-scoped rng.
type Capability func(rng *rand.Rand) any

// CapabilityRegistry maps group name to method name to capability.
// Built once at startup; lookups are plain two-level map reads with an
// explicit miss case.
type CapabilityRegistry struct {
	mu     sync.RWMutex
	groups map[string]map[string]Capability
}

func NewCapabilityRegistry() *CapabilityRegistry {
	return &CapabilityRegistry{
		groups: make(map[string]map[string]Capability),
	}
}

func (r *CapabilityRegistry) Register(group, method string, fn Capability) {
	r.mu.Lock()
	defer r.mu.Unlock()
	methods, ok := r.groups[group]
	if !ok {
		methods = make(map[string]Capability)
		r.groups[group] = methods
	}
	methods[method] = fn
}

// Resolve looks up a dotted path such as "vehicle.bicycle".
func (r *CapabilityRegistry) Resolve(path string) (Capability, error) {
	parts := strings.SplitN(path, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("capability path must be group.method, got %q", path)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	methods, ok := r.groups[parts[0]]
	if !ok {
		return nil, fmt.Errorf("capability group not found: %s", parts[0])
	}
	fn, ok := methods[parts[1]]
	if !ok {
		return nil, fmt.Errorf("capability not found: %s", path)
	}
	return fn, nil
}

// List returns every registered dotted path, sorted.
func (r *CapabilityRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	paths := make([]string, 0)
	for group, methods := range r.groups {
		for method := range methods {
			paths = append(paths, group+"."+method)
		}
	}
	sort.Strings(paths)
	return paths
}

func fromFaker(fn func(opts ...options.OptionFunc) string) Capability {
	return func(*rand.Rand) any { return fn() }
}

func pick(items []string) Capability {
	return func(rng *rand.Rand) any { return items[rng.Intn(len(items))] }
}

func DefaultCapabilityRegistry() *CapabilityRegistry {
	r := NewCapabilityRegistry()

	r.Register("person", "first_name", fromFaker(faker.FirstName))
	r.Register("person", "last_name", fromFaker(faker.LastName))
	r.Register("person", "full_name", fromFaker(faker.Name))
	r.Register("person", "gender", fromFaker(faker.Gender))

	r.Register("internet", "email", fromFaker(faker.Email))
	r.Register("internet", "username", fromFaker(faker.Username))
	r.Register("internet", "url", fromFaker(faker.URL))
	r.Register("internet", "domain", fromFaker(faker.DomainName))
	r.Register("internet", "ipv4", fromFaker(faker.IPv4))
	r.Register("internet", "ipv6", fromFaker(faker.IPv6))
	r.Register("internet", "mac_address", fromFaker(faker.MacAddress))

	r.Register("phone", "number", fromFaker(faker.Phonenumber))
	r.Register("phone", "e164", fromFaker(faker.E164PhoneNumber))
	r.Register("phone", "toll_free", fromFaker(faker.TollFreePhoneNumber))

	r.Register("lorem", "word", fromFaker(faker.Word))
	r.Register("lorem", "sentence", fromFaker(faker.Sentence))
	r.Register("lorem", "paragraph", fromFaker(faker.Paragraph))

	r.Register("payment", "credit_card", fromFaker(faker.CCNumber))
	r.Register("payment", "credit_card_type", fromFaker(faker.CCType))
	r.Register("payment", "currency", fromFaker(faker.Currency))
	r.Register("payment", "amount", fromFaker(faker.AmountWithCurrency))

	r.Register("time", "timestamp", fromFaker(faker.Timestamp))
	r.Register("time", "date", fromFaker(faker.Date))
	r.Register("time", "day_of_week", fromFaker(faker.DayOfWeek))
	r.Register("time", "month", fromFaker(faker.MonthName))
	r.Register("time", "unix", func(*rand.Rand) any { return faker.UnixTime() })

	r.Register("address", "street", streetAddress)
	r.Register("address", "city", pick(cities))
	r.Register("address", "country", pick(countries))
	r.Register("address", "zipcode", zipcode)

	r.Register("company", "name", companyName)
	r.Register("company", "suffix", pick(companySuffixes))
	r.Register("company", "job_title", pick(jobTitles))
	r.Register("company", "industry", pick(industries))

	r.Register("media", "image_url", imageURL)

	r.Register("color", "hex", hexColor)
	r.Register("color", "name", pick(colorNames))

	r.Register("vehicle", "make", pick(vehicleMakes))
	r.Register("vehicle", "model", pick(vehicleModels))
	r.Register("vehicle", "bicycle", pick(bicycleTypes))
	r.Register("vehicle", "fuel", pick(fuelTypes))

	return r
}

func streetAddress(rng *rand.Rand) any {
	return fmt.Sprintf("%d %s %s",
		1+rng.Intn(9999),
		streetNames[rng.Intn(len(streetNames))],
		streetSuffixes[rng.Intn(len(streetSuffixes))])
}

func zipcode(rng *rand.Rand) any {
	return fmt.Sprintf("%05d", rng.Intn(100000))
}

func companyName(rng *rand.Rand) any {
	return companyStems[rng.Intn(len(companyStems))] + " " +
		companySuffixes[rng.Intn(len(companySuffixes))]
}

func imageURL(rng *rand.Rand) any {
	return fmt.Sprintf("https://picsum.photos/seed/%d/640/480", rng.Intn(100000))
}

func hexColor(rng *rand.Rand) any {
	return fmt.Sprintf("#%02X%02X%02X", rng.Intn(256), rng.Intn(256), rng.Intn(256))
}

var cities = []string{
	"New York", "Los Angeles", "Chicago", "Houston", "Phoenix",
	"Philadelphia", "San Antonio", "San Diego", "Dallas", "San Jose",
	"Austin", "Jacksonville", "Fort Worth", "Columbus", "Charlotte",
	"San Francisco", "Indianapolis", "Seattle", "Denver", "Washington",
	"Boston", "Nashville", "Detroit", "Portland", "Las Vegas",
	"London", "Paris", "Tokyo", "Berlin", "Madrid",
	"Rome", "Amsterdam", "Vienna", "Prague", "Barcelona",
	"Munich", "Milan", "Stockholm", "Copenhagen", "Oslo",
}

var countries = []string{
	"United States", "Canada", "Mexico", "Brazil", "Argentina",
	"United Kingdom", "France", "Germany", "Spain", "Italy",
	"Netherlands", "Belgium", "Sweden", "Norway", "Denmark",
	"Poland", "Austria", "Switzerland", "Portugal", "Ireland",
	"Japan", "China", "India", "South Korea", "Australia",
	"New Zealand", "South Africa", "Egypt", "Turkey", "Greece",
}

var streetNames = []string{
	"Oak", "Maple", "Cedar", "Pine", "Elm", "Washington", "Lake",
	"Hill", "Park", "Main", "Church", "High", "Mill", "River",
	"Spring", "Ridge", "Sunset", "Meadow", "Forest", "Highland",
}

var streetSuffixes = []string{
	"Street", "Avenue", "Boulevard", "Drive", "Lane", "Road",
	"Court", "Place", "Terrace", "Way",
}

var companyStems = []string{
	"Acme", "Globex", "Initech", "Umbra", "Vertex", "Nimbus",
	"Quantum", "Stellar", "Apex", "Cascade", "Horizon", "Summit",
	"Pinnacle", "Beacon", "Catalyst", "Meridian", "Keystone", "Atlas",
}

var companySuffixes = []string{
	"Inc", "LLC", "Group", "Holdings", "Labs", "Systems",
	"Industries", "Partners", "Solutions", "Technologies",
}

var industries = []string{
	"Software", "Finance", "Healthcare", "Retail", "Manufacturing",
	"Logistics", "Energy", "Education", "Media", "Hospitality",
}

var jobTitles = []string{
	"Software Engineer", "Product Manager", "Data Analyst",
	"Account Executive", "Operations Manager", "UX Designer",
	"Marketing Specialist", "Customer Success Manager",
	"Financial Analyst", "HR Coordinator", "Sales Director",
	"DevOps Engineer", "Technical Writer", "QA Engineer",
	"Business Development Manager", "Research Scientist",
}

var colorNames = []string{
	"Red", "Orange", "Yellow", "Green", "Blue", "Indigo", "Violet",
	"Teal", "Maroon", "Olive", "Navy", "Coral", "Crimson", "Amber",
}

var vehicleMakes = []string{
	"Toyota", "Honda", "Ford", "Chevrolet", "Volkswagen", "BMW",
	"Mercedes-Benz", "Audi", "Nissan", "Hyundai", "Kia", "Volvo",
}

var vehicleModels = []string{
	"Sedan", "Coupe", "Hatchback", "Wagon", "Convertible", "SUV",
	"Crossover", "Pickup", "Minivan", "Roadster",
}

var bicycleTypes = []string{
	"Road Bike", "Mountain Bike", "Gravel Bike", "Touring Bike",
	"BMX Bike", "Cruiser Bicycle", "Folding Bike", "Tandem Bicycle",
	"Fixed Gear Bike", "Cargo Bike",
}

var fuelTypes = []string{
	"Gasoline", "Diesel", "Electric", "Hybrid", "Hydrogen", "Ethanol",
}
