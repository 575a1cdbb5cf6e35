package problemgen

import (
	"fmt"

	"github.com/abhisek/mathdrill/internal/answer"
)

func moneyTemplates() []Template {
	return []Template{
		moneyAdd(),
		moneyChange(),
		moneyMulti(),
		moneyCompare(),
		moneyAddDollars(),
	}
}

func moneyAdd() Template {
	return Template{
		ID:    "money-add",
		Title: "Add two prices",
		Slots: []Slot{
			{Name: "name", Domain: Words(learnerNames...), Format: FormatText},
			{Name: "item1", Domain: Words(shopItems...), Format: FormatText},
			{Name: "item2", Domain: Words(shopItems...), Format: FormatText},
			{Name: "price1", Domain: RangeStep(100, 1500, 25), Format: FormatMoney},
			{Name: "price2", Domain: RangeStep(100, 1500, 25), Format: FormatMoney},
		},
		Distinct: [][]string{{"item1", "item2"}},
		Prompt:   "{name} buys a {item1} for {price1} and a {item2} for {price2}. How much does {name} spend in all?",
		Solve: func(p Params) answer.Answer {
			return answer.Money(p.Int("price1") + p.Int("price2"))
		},
		Explain: func(p Params) string {
			a, b := p.Int("price1"), p.Int("price2")
			return fmt.Sprintf("Add the two prices: %s + %s = %s.", money(a), money(b), money(a+b))
		},
	}
}

func moneyChange() Template {
	return Template{
		ID:    "money-change",
		Title: "Change from a bill",
		Slots: []Slot{
			{Name: "name", Domain: Words(learnerNames...), Format: FormatText},
			{Name: "item1", Domain: Words(shopItems...), Format: FormatText},
			{Name: "item2", Domain: Words(shopItems...), Format: FormatText},
			{Name: "price1", Domain: RangeStep(100, 900, 5), Format: FormatMoney},
			{Name: "price2", Domain: RangeStep(100, 900, 5), Format: FormatMoney},
			{Name: "bill", Domain: OneOf(1000, 2000), Format: FormatMoney},
		},
		Distinct: [][]string{{"item1", "item2"}},
		Constraints: []Constraint{
			{Name: "bill covers total", Check: func(p Params) bool {
				return p.Int("price1")+p.Int("price2") < p.Int("bill")
			}},
		},
		Prompt: "{name} buys a {item1} for {price1} and a {item2} for {price2}, and pays with a {bill} bill. How much change does {name} get back?",
		Solve: func(p Params) answer.Answer {
			return answer.Money(p.Int("bill") - p.Int("price1") - p.Int("price2"))
		},
		Explain: func(p Params) string {
			a, b, bill := p.Int("price1"), p.Int("price2"), p.Int("bill")
			return fmt.Sprintf("First add the prices: %s + %s = %s. Then subtract from the bill: %s - %s = %s.",
				money(a), money(b), money(a+b), money(bill), money(a+b), money(bill-a-b))
		},
	}
}

func moneyMulti() Template {
	return Template{
		ID:    "money-multi",
		Title: "Several of one item plus another",
		Slots: []Slot{
			{Name: "name", Domain: Words(learnerNames...), Format: FormatText},
			{Name: "qty", Domain: Range(2, 6)},
			{Name: "many", Domain: Words(pluralItems...), Format: FormatText},
			{Name: "unit", Domain: RangeStep(25, 300, 25), Format: FormatMoney},
			{Name: "item2", Domain: Words(shopItems...), Format: FormatText},
			{Name: "price2", Domain: RangeStep(100, 1200, 25), Format: FormatMoney},
		},
		Prompt: "{name} buys {qty} {many} that cost {unit} each and a {item2} for {price2}. What is the total cost?",
		Solve: func(p Params) answer.Answer {
			return answer.Money(p.Int("qty")*p.Int("unit") + p.Int("price2"))
		},
		Explain: func(p Params) string {
			qty, unit, b := p.Int("qty"), p.Int("unit"), p.Int("price2")
			sub := qty * unit
			return fmt.Sprintf("The %s cost %d x %s = %s. Add the %s: %s + %s = %s.",
				p.Text("many"), qty, money(unit), money(sub), p.Text("item2"), money(sub), money(b), money(sub+b))
		},
	}
}

func moneyCompare() Template {
	return Template{
		ID:    "money-compare",
		Title: "Who has more money",
		Slots: []Slot{
			{Name: "name1", Domain: Words(learnerNames...), Format: FormatText},
			{Name: "name2", Domain: Words(learnerNames...), Format: FormatText},
			{Name: "amount1", Domain: RangeStep(500, 1500, 5), Format: FormatMoney},
			{Name: "amount2", Domain: RangeStep(500, 1500, 5), Format: FormatMoney},
		},
		Distinct: [][]string{{"name1", "name2"}},
		Constraints: []Constraint{
			{Name: "amounts differ but are close", Check: func(p Params) bool {
				d := p.Int("amount1") - p.Int("amount2")
				return d != 0 && d >= -500 && d <= 500
			}},
		},
		Prompt: "{name1} has {amount1}. {name2} has {amount2}. Who has more money?",
		Solve: func(p Params) answer.Answer {
			n1, n2 := p.Text("name1"), p.Text("name2")
			if p.Int("amount1") > p.Int("amount2") {
				return answer.Choice(n1, n1, n2)
			}
			return answer.Choice(n2, n1, n2)
		},
		Explain: func(p Params) string {
			n1, n2 := p.Text("name1"), p.Text("name2")
			a1, a2 := p.Int("amount1"), p.Int("amount2")
			if a1 < a2 {
				n1, n2, a1, a2 = n2, n1, a2, a1
			}
			return fmt.Sprintf("Compare the dollars first, then the cents. %s is more than %s, so %s has more money.",
				money(a1), money(a2), n1)
		},
	}
}

// moneyAddDollars has no constraints, so it always instantiates.
func moneyAddDollars() Template {
	return Template{
		ID:    "money-add-dollars",
		Title: "Add whole-dollar prices",
		Slots: []Slot{
			{Name: "name", Domain: Words(learnerNames...), Format: FormatText},
			{Name: "item1", Domain: Words(shopItems...), Format: FormatText},
			{Name: "price1", Domain: RangeStep(100, 1000, 100), Format: FormatMoney},
			{Name: "price2", Domain: RangeStep(100, 1000, 100), Format: FormatMoney},
		},
		Prompt: "{name} buys a {item1} for {price1} and a snack for {price2}. How much does {name} spend in all?",
		Solve: func(p Params) answer.Answer {
			return answer.Money(p.Int("price1") + p.Int("price2"))
		},
		Explain: func(p Params) string {
			a, b := p.Int("price1"), p.Int("price2")
			return fmt.Sprintf("Add the dollars: %s + %s = %s.", money(a), money(b), money(a+b))
		},
	}
}
