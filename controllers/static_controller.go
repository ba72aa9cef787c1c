package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type staticSection struct {
	Heading    string   `json:"heading"`
	Paragraphs []string `json:"paragraphs"`
}

type staticView struct {
	Lead     string          `json:"lead"`
	Sections []staticSection `json:"sections"`
}

type staticPage struct {
	title string
	view  staticView
}

var staticPages = map[string]staticPage{
	"about": {"About us", staticView{
		Lead: "ShopMart brings everyday essentials, fashion and electronics to your door.",
		Sections: []staticSection{
			{"Our story", []string{"We started with a simple idea: shopping online should be quick, fair and reliable."}},
			{"What we offer", []string{"Thousands of products from trusted brands, secure card payments and fast delivery across the country."}},
		},
	}},
	"contact": {"Contact us", staticView{
		Lead: "We are happy to help with orders, returns and anything else.",
		Sections: []staticSection{
			{"Customer service", []string{"Email support@shopmart.example or call 19999, every day from 9am to 9pm."}},
			{"Head office", []string{"12 Tahrir Square, Cairo, Egypt."}},
		},
	}},
	"help": {"Help center", staticView{
		Lead: "Answers to the questions we hear most.",
		Sections: []staticSection{
			{"Orders", []string{"You can follow every order from your profile under My orders."}},
			{"Payments", []string{"We accept all major cards. Payments are handled by our payment provider; card details never reach our servers."}},
			{"Returns", []string{"Unused items can be returned within 14 days of delivery."}},
		},
	}},
	"privacy": {"Privacy policy", staticView{
		Lead: "How we collect and use your personal data.",
		Sections: []staticSection{
			{"Data we collect", []string{"Your name, email, phone number and shipping addresses, and the orders you place."}},
			{"How we use it", []string{"To deliver your orders, keep your account secure and, with your consent, tell you about offers."}},
			{"Your rights", []string{"You may ask for a copy of your data or for its deletion at any time."}},
		},
	}},
	"terms": {"Terms of service", staticView{
		Lead: "The rules that apply when you shop with us.",
		Sections: []staticSection{
			{"Accounts", []string{"You are responsible for keeping your password confidential."}},
			{"Pricing", []string{"Prices include VAT and may change without notice. The price at checkout is the price you pay."}},
		},
	}},
	"cookies": {"Cookie policy", staticView{
		Lead: "We use a small number of cookies to run the store.",
		Sections: []staticSection{
			{"Essential cookies", []string{"A visitor cookie keeps your cart and notifications, and a session cookie keeps you signed in."}},
			{"No tracking", []string{"We do not use advertising or cross-site tracking cookies."}},
		},
	}},
}

// StaticPage renders one of the informational pages, selected by the last path segment.
func StaticPage(name string) gin.HandlerFunc {
	page, ok := staticPages[name]
	if !ok {
		panic("unknown static page " + name)
	}
	return func(c *gin.Context) {
		render(c, http.StatusOK, "static.html", page.title, page.view)
	}
}

// StaticPageNames lists the informational pages for route registration.
func StaticPageNames() []string {
	return []string{"about", "contact", "help", "privacy", "terms", "cookies"}
}
