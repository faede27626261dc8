package repositories

import (
	"strconv"
	"time"

	"github.com/shortflix/backend/internal/models"
)

// SeedVideos returns the fixture catalog loaded at startup. Comment timestamps
// are placed relative to now.
func SeedVideos(now time.Time) []models.Video {
	ago := func(d time.Duration) int64 { return now.Add(-d).UnixMilli() }
	comment := func(id int, author, text string, age time.Duration, likes int) models.Comment {
		return models.Comment{ID: strconv.Itoa(id), Author: author, Text: text, Timestamp: ago(age), Likes: likes}
	}

	return []models.Video{
		{
			ID:          "1",
			VideoURL:    "https://cdn.pixabay.com/video/2024/08/30/228847_large.mp4",
			Title:       "Waterfall Mount Steam",
			Description: "Steam rising from a waterfall as it drops down rocky mountain terrain.",
			Tags:        []string{"nature", "waterfall", "mountain", "steam", "scenic"},
			Duration:    19,
			Likes:       478000,
			Quality:     "4K",
			Comments: []models.Comment{
				comment(18, "Sam", "So calming and beautiful", 2*time.Hour, 14),
				comment(19, "Taylor", "Makes me want to visit mountains!", time.Hour, 11),
			},
			Rating:       4.6,
			TotalRatings: 450,
		},
		{
			ID:          "2",
			VideoURL:    "https://cdn.pixabay.com/video/2025/11/21/317409_large.mp4",
			Title:       "Cloudscape Sunset Forest",
			Description: "Golden-hour skies and drifting clouds above a dense forest.",
			Tags:        []string{"nature", "sunset", "cloudscape", "forest", "relaxing"},
			Duration:    20,
			Likes:       623000,
			Quality:     "4K",
			Comments: []models.Comment{
				comment(20, "Jordan", "Stunning colors!", 3*time.Hour, 9),
				comment(21, "Casey", "Looks so peaceful", 90*time.Minute, 7),
			},
			Rating:       4.7,
			TotalRatings: 580,
		},
		{
			ID:          "3",
			VideoURL:    "https://samplelib.com/lib/preview/mp4/sample-10s.mp4",
			Title:       "Ten Second Wonder",
			Description: "Ten seconds of footage made to show off smooth playback.",
			Tags:        []string{"demo", "tech", "cinematic"},
			Duration:    10,
			Likes:       2156000,
			Quality:     "1080p",
			Comments: []models.Comment{
				comment(4, "Diana", "Perfect for quick entertainment", 2*time.Hour, 15),
				comment(5, "Evan", "Great quality!", time.Hour, 8),
			},
			Rating:       4.8,
			TotalRatings: 2100,
		},
		{
			ID:          "4",
			VideoURL:    "https://samplelib.com/lib/preview/mp4/sample-15s.mp4",
			Title:       "Quick Escape",
			Description: "A fifteen second getaway into wide open scenery.",
			Tags:        []string{"adventure", "demo", "scenic"},
			Duration:    15,
			Likes:       1345000,
			Quality:     "480p",
			Comments: []models.Comment{
				comment(6, "Frank", "Love the space theme", 48*time.Hour, 9),
			},
			Rating:       4.1,
			TotalRatings: 1650,
		},
		{
			ID:          "5",
			VideoURL:    "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/BigBuckBunny.mp4",
			Title:       "Big Buck Bunny: Full Adventure",
			Description: "A giant rabbit and his forest friends in the open-source animated short.",
			Tags:        []string{"animation", "nature", "animals", "adventure"},
			Duration:    596,
			Likes:       3421000,
			Quality:     "1080p",
			Comments: []models.Comment{
				comment(7, "Grace", "Classic animation!", 72*time.Hour, 22),
				comment(8, "Henry", "Worth watching the full version", 12*time.Hour, 18),
			},
			Rating:       4.9,
			TotalRatings: 3400,
		},
		{
			ID:          "6",
			VideoURL:    "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/ElephantsDream.mp4",
			Title:       "Elephants Dream",
			Description: "A surreal science fiction trip through a mechanical world.",
			Tags:        []string{"animation", "sci-fi", "artistic", "adventure"},
			Duration:    653,
			Likes:       2834000,
			Quality:     "720p",
			Comments: []models.Comment{
				comment(9, "Ivy", "Mind-bending visuals", 96*time.Hour, 14),
				comment(10, "Jack", "Very creative", 6*time.Hour, 11),
			},
			Rating:       4.6,
			TotalRatings: 2800,
		},
		{
			ID:          "7",
			VideoURL:    "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/ForBiggerBlazes.mp4",
			Title:       "For Bigger Blazes",
			Description: "Fire and energy in a high-bitrate streaming showcase.",
			Tags:        []string{"action", "demo", "cinematic", "intense"},
			Duration:    15,
			Likes:       1923000,
			Quality:     "1080p",
			Comments: []models.Comment{
				comment(11, "Kate", "Amazing fire effects!", time.Hour, 13),
			},
			Rating:       4.4,
			TotalRatings: 1900,
		},
		{
			ID:          "8",
			VideoURL:    "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/ForBiggerEscapes.mp4",
			Title:       "For Bigger Escapes",
			Description: "Breathtaking landscapes and the freedom of exploration.",
			Tags:        []string{"nature", "scenic", "adventure", "relaxing"},
			Duration:    15,
			Likes:       2567000,
			Quality:     "720p",
			Comments: []models.Comment{
				comment(12, "Liam", "Beautiful scenery", 2*time.Hour, 16),
				comment(13, "Mia", "Very relaxing to watch", 30*time.Minute, 9),
			},
			Rating:       4.7,
			TotalRatings: 2550,
		},
		{
			ID:          "9",
			VideoURL:    "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/ForBiggerFun.mp4",
			Title:       "For Bigger Fun",
			Description: "A bright, upbeat clip to lift your mood.",
			Tags:        []string{"fun", "urban", "energetic", "entertainment"},
			Duration:    60,
			Likes:       3102000,
			Quality:     "1080p",
			Comments: []models.Comment{
				comment(14, "Noah", "So much energy!", 24*time.Hour, 20),
				comment(15, "Olivia", "Makes me smile every time", 12*time.Hour, 17),
			},
			Rating:       4.8,
			TotalRatings: 3080,
		},
		{
			ID:          "10",
			VideoURL:    "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/ForBiggerJoyrides.mp4",
			Title:       "For Bigger Joyrides",
			Description: "The thrill of the ride with dynamic camera work.",
			Tags:        []string{"action", "adventure", "urban", "exciting"},
			Duration:    15,
			Likes:       2890000,
			Quality:     "720p",
			Comments: []models.Comment{
				comment(16, "Parker", "Adrenaline rush!", time.Hour, 19),
				comment(17, "Quinn", "Great camera work", 30*time.Minute, 12),
			},
			Rating:       4.5,
			TotalRatings: 2870,
		},
		{
			ID:          "11",
			VideoURL:    "https://cdn.pixabay.com/video/2025/11/21/317409_large.mp4",
			Title:       "Wind & Windpower Energy",
			Description: "Wind turbines spinning against a dramatic sky.",
			Tags:        []string{"wind", "energy", "windpower", "nature", "renewable"},
			Duration:    20,
			Likes:       512000,
			Quality:     "4K",
			Comments: []models.Comment{
				comment(22, "Morgan", "Great concept. Very futuristic!", 4*time.Hour, 8),
				comment(23, "Alex", "Love the motion and vibe.", 2*time.Hour, 6),
			},
			Rating:       4.5,
			TotalRatings: 500,
		},
	}
}
