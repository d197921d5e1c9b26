package domain

// SeedProducts returns the built-in product list served when no backend
// is reachable. Every call returns a fresh copy.
func SeedProducts() []Product {
	return []Product{
		{
			ID:          "1",
			Title:       "Apple iPhone 15 Pro, 256GB, Blue Titanium - Fully Unlocked",
			Price:       999.00,
			Rating:      4.8,
			ReviewCount: 12450,
			ImageURL:    "https://picsum.photos/id/160/600/600",
			Category:    "Electronics",
			Description: "The iPhone 15 Pro features a strong and light aerospace-grade titanium design with a textured matte-glass back. It also features a Ceramic Shield front that's tougher than any smartphone glass.",
			Brand:       "Apple",
			Features: []string{
				"Forged in Titanium",
				"A17 Pro Chip",
				"Powerful Pro Camera System",
				"Customizable Action Button",
			},
			IsPrime:     true,
			StockStatus: "In Stock",
		},
		{
			ID:          "2",
			Title:       "Sony WH-1000XM5 Wireless Industry Leading Noise Canceling Headphones",
			Price:       348.00,
			Rating:      4.6,
			ReviewCount: 8900,
			ImageURL:    "https://picsum.photos/id/2/600/600",
			Category:    "Electronics",
			Description: "The WH-1000XM5 headphones rewrite the rules of distraction-free listening. Two processors control 8 microphones for unprecedented noise cancellation and exceptional call quality.",
			Brand:       "Sony",
			Features: []string{
				"Industry-leading noise cancellation",
				"Magnificent Sound",
				"Crystal clear hands-free calling",
				"Up to 30-hour battery life",
			},
			IsPrime:     true,
			StockStatus: "In Stock",
		},
		{
			ID:          "3",
			Title:       `Kindle Paperwhite (16 GB) - Now with a 6.8" display and adjustable warm light`,
			Price:       149.99,
			Rating:      4.7,
			ReviewCount: 25000,
			ImageURL:    "https://picsum.photos/id/1/600/600",
			Category:    "Devices",
			Description: "Purpose-built for reading with a flush-front design and 300 ppi glare-free display that reads like real paper, even in bright sunlight.",
			Brand:       "Amazon",
			Features: []string{
				"Adjustable warm light",
				"Up to 10 weeks of battery life",
				"Waterproof reading",
				"A massive library in your pocket",
			},
			IsPrime:     true,
			StockStatus: "In Stock",
		},
		{
			ID:          "4",
			Title:       "SAMSUNG 32-Inch Class QLED 4K Q60C Series Quantum HDR",
			Price:       497.99,
			Rating:      4.5,
			ReviewCount: 3200,
			ImageURL:    "https://picsum.photos/id/10/600/600",
			Category:    "Home Entertainment",
			Description: "Bask in a billion shades of brilliant color at 100% Color Volume. Quantum Processor Lite with 4K Upscaling optimizes content for QLED.",
			Brand:       "Samsung",
			Features: []string{
				"100% Color Volume with Quantum Dot",
				"Quantum HDR",
				"Motion Xcelerator",
				"Object Tracking Sound Lite",
			},
			IsPrime:     false,
			StockStatus: "Only 5 left in stock - order soon.",
		},
		{
			ID:          "5",
			Title:       "Echo Dot (5th Gen, 2022 release) | Smart speaker with Alexa | Charcoal",
			Price:       49.99,
			Rating:      4.7,
			ReviewCount: 45000,
			ImageURL:    "https://picsum.photos/id/12/600/600",
			Category:    "Smart Home",
			Description: "Our best-sounding Echo Dot yet - Enjoy an improved audio experience compared to any previous Echo Dot with Alexa for clearer vocals, deeper bass and vibrant sound in any room.",
			Brand:       "Amazon",
			Features: []string{
				"Vibrant sound",
				"Helpful routines",
				"Privacy controls",
				"Sustainability design",
			},
			IsPrime:     true,
			StockStatus: "In Stock",
		},
		{
			ID:          "6",
			Title:       "Logitech MX Master 3S Wireless Performance Mouse",
			Price:       99.00,
			Rating:      4.8,
			ReviewCount: 15400,
			ImageURL:    "https://picsum.photos/id/20/600/600",
			Category:    "Computers",
			Description: "Introducing Logitech MX Master 3S - an iconic mouse remastered. Now with Quiet Clicks and 8K DPI any-surface tracking for more feel and performance than ever before.",
			Brand:       "Logitech",
			Features: []string{
				"8K DPI any-surface tracking",
				"Quiet clicks",
				"MagSpeed scrolling",
				"Ergonomic design",
			},
			IsPrime:     true,
			StockStatus: "In Stock",
		},
	}
}
