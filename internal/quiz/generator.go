package quiz

import (
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"time"

	"github.com/heritage-map/backend/internal/models"
)

// Fallback option pools, used when the dataset cannot supply three
// distinct wrong answers on its own.
var (
	commonDynasties = []string{
		"夏", "商", "周", "秦", "汉", "魏晋", "南北朝", "隋",
		"唐", "宋", "元", "明", "清", "近代", "现代",
	}
	commonCities = []string{
		"北京", "上海", "西安", "南京", "杭州", "成都", "广州",
		"武汉", "重庆", "天津",
	}
	fallbackYears = []string{"约前1000年", "约前500年", "约前2000年", "约前1500年"}
)

var leadingNumber = regexp.MustCompile(`\d+`)

// flatItem is one dataset item joined with its city record.
type flatItem struct {
	models.HistoryItem
	City     string
	Province string
}

// Generator builds multiple-choice questions from the dataset. The
// random source is injected so tests can run deterministically.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator builds a generator. A nil rng gets a time-seeded one.
func NewGenerator(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rng: rng}
}

// Generate picks one dataset item and one question kind uniformly at
// random and synthesizes a four-option question for it. The date is
// stamped on the question so callers can detect stale ones.
func (g *Generator) Generate(dataset []models.CityRecord, date string) (*models.QuizQuestion, error) {
	items := flatten(dataset)
	if len(items) == 0 {
		return nil, fmt.Errorf("dataset is empty")
	}

	item := items[g.rng.Intn(len(items))]

	var q *models.QuizQuestion
	switch g.rng.Intn(3) {
	case 0:
		q = g.dynastyQuestion(item, items)
	case 1:
		q = g.locationQuestion(item, items)
	default:
		q = g.yearQuestion(item, items)
	}

	q.Item = models.ItemRef{City: item.City, Title: item.Title}
	q.Date = date
	return q, nil
}

func (g *Generator) dynastyQuestion(item flatItem, all []flatItem) *models.QuizQuestion {
	pool := distinct(all, func(i flatItem) string { return i.Dynasty })
	return &models.QuizQuestion{
		Kind:     models.KindEventDynasty,
		Question: fmt.Sprintf("\"%s\"发生在哪个朝代？", item.Title),
		Correct:  item.Dynasty,
		Options:  g.buildOptions(item.Dynasty, pool, commonDynasties),
		Explanation: fmt.Sprintf("%s发生在%s时期（%s），位于%s。%s",
			item.Title, item.Dynasty, item.Year, item.City, truncate(item.Description, 100)),
	}
}

func (g *Generator) locationQuestion(item flatItem, all []flatItem) *models.QuizQuestion {
	pool := distinct(all, func(i flatItem) string { return i.City })
	return &models.QuizQuestion{
		Kind:     models.KindEventLocation,
		Question: fmt.Sprintf("\"%s\"位于哪个城市？", item.Title),
		Correct:  item.City,
		Options:  g.buildOptions(item.City, pool, commonCities),
		Explanation: fmt.Sprintf("%s位于%s（%s），发生在%s时期。%s",
			item.Title, item.City, item.Province, item.Dynasty, truncate(item.Description, 100)),
	}
}

func (g *Generator) yearQuestion(item flatItem, all []flatItem) *models.QuizQuestion {
	pool := distinct(all, func(i flatItem) string { return i.Year })
	return &models.QuizQuestion{
		Kind:     models.KindEventYear,
		Question: fmt.Sprintf("\"%s\"发生在哪一年？", item.Title),
		Correct:  item.Year,
		Options:  g.buildOptions(item.Year, pool, yearDistractors(item.Year)),
		Explanation: fmt.Sprintf("%s发生在%s，位于%s。%s",
			item.Title, item.Year, item.City, truncate(item.Description, 100)),
	}
}

// yearDistractors derives wrong years from the leading number of the
// correct one, offset by ±100 and ±200 with the 年 suffix. Years with
// no extractable number fall back to a fixed ancient-era list.
func yearDistractors(correct string) []string {
	m := leadingNumber.FindString(correct)
	if m == "" {
		return fallbackYears
	}
	base, err := strconv.Atoi(m)
	if err != nil {
		return fallbackYears
	}
	candidates := []string{
		strconv.Itoa(base-100) + "年",
		strconv.Itoa(base+100) + "年",
		strconv.Itoa(base-200) + "年",
		strconv.Itoa(base+200) + "年",
	}
	out := candidates[:0]
	for _, c := range candidates {
		if c != correct {
			out = append(out, c)
		}
	}
	return out
}

// buildOptions assembles the final option set: three distractors drawn
// from the dataset pool plus the fallback list, merged with the
// correct answer, deduplicated, padded to exactly four, shuffled.
func (g *Generator) buildOptions(correct string, pool, fallback []string) []string {
	wrong := make([]string, 0, len(pool)+len(fallback))
	seen := map[string]bool{correct: true}
	for _, v := range append(append([]string{}, pool...), fallback...) {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		wrong = append(wrong, v)
	}

	g.rng.Shuffle(len(wrong), func(i, j int) { wrong[i], wrong[j] = wrong[j], wrong[i] })
	if len(wrong) > 3 {
		wrong = wrong[:3]
	}

	options := append([]string{correct}, wrong...)

	// Pad from the remaining fallback pool when dedup left fewer than
	// four options.
	if len(options) < 4 {
		padding := append([]string{}, fallback...)
		g.rng.Shuffle(len(padding), func(i, j int) { padding[i], padding[j] = padding[j], padding[i] })
		for _, v := range padding {
			if len(options) >= 4 {
				break
			}
			if v == correct || containsStr(options, v) {
				continue
			}
			options = append(options, v)
		}
	}
	if len(options) > 4 {
		options = options[:4]
	}

	g.rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })
	return options
}

func flatten(dataset []models.CityRecord) []flatItem {
	var items []flatItem
	for _, city := range dataset {
		for _, it := range city.Items {
			items = append(items, flatItem{HistoryItem: it, City: city.City, Province: city.Province})
		}
	}
	return items
}

func distinct(items []flatItem, field func(flatItem) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, it := range items {
		v := field(it)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// truncate shortens a description to n runes for explanations,
// appending an ellipsis the way the UI has always shown them.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

func containsStr(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
