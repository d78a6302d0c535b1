package service

import (
	"github.com/lib/pq"

	"github.com/noah-isme/rainbow-kids-api/internal/models"
)

// Fallback content shown whenever a section has no live rows. Each function
// builds a fresh slice so callers can never alter the baked-in lists.

func fallbackTeachers() []models.Teacher {
	return []models.Teacher{
		{ID: "fallback-teacher-1", Name: "Miss Lily Johnson", Role: "Art Teacher", Bio: strPtr("Passionate about nurturing creativity in young minds through colorful art projects."), ImageURL: strPtr("/assets/teacher-lily.jpg"), ColorClass: strPtr("from-candy to-candy-dark"), DisplayOrder: 1, IsActive: true},
		{ID: "fallback-teacher-2", Name: "Mr. Tom Brown", Role: "Sports Coach", Bio: strPtr("Dedicated to helping children develop physical skills while having fun."), ImageURL: strPtr("/assets/teacher-tom.jpg"), ColorClass: strPtr("from-mint to-mint-dark"), DisplayOrder: 2, IsActive: true},
		{ID: "fallback-teacher-3", Name: "Miss Emma Lee", Role: "Storytelling Teacher", Bio: strPtr("Bringing magical stories to life and inspiring a love for reading."), ImageURL: strPtr("/assets/teacher-emma.jpg"), ColorClass: strPtr("from-lavender to-lavender-dark"), DisplayOrder: 3, IsActive: true},
	}
}

func fallbackClasses() []models.ClassProgram {
	return []models.ClassProgram{
		{ID: "fallback-class-1", Name: "Play Group", AgeRange: "Age 3-4", Description: strPtr("Introduction to learning through play, sensory activities, and social interaction."), Features: pq.StringArray{"Sensory Play", "Basic Shapes & Colors", "Rhymes & Songs", "Motor Skills"}, IconName: strPtr("Baby"), ColorClass: strPtr("from-candy to-candy-dark"), BgColorClass: strPtr("bg-candy/10"), DisplayOrder: 1, IsActive: true},
		{ID: "fallback-class-2", Name: "Nursery", AgeRange: "Age 4-5", Description: strPtr("Building foundational skills in literacy, numeracy, and creative expression."), Features: pq.StringArray{"Alphabet Recognition", "Number Concepts", "Art & Craft", "Story Time"}, IconName: strPtr("BookOpen"), ColorClass: strPtr("from-sky to-sky-dark"), BgColorClass: strPtr("bg-sky/10"), DisplayOrder: 2, IsActive: true},
		{ID: "fallback-class-3", Name: "Junior KG", AgeRange: "Age 5-6", Description: strPtr("Developing reading, writing, and mathematical thinking skills."), Features: pq.StringArray{"Reading Basics", "Simple Math", "Science Exploration", "Physical Education"}, IconName: strPtr("School"), ColorClass: strPtr("from-mint to-mint-dark"), BgColorClass: strPtr("bg-mint/10"), DisplayOrder: 3, IsActive: true},
		{ID: "fallback-class-4", Name: "Senior KG", AgeRange: "Age 6-7", Description: strPtr("Preparing for primary school with advanced academic and life skills."), Features: pq.StringArray{"Advanced Reading", "Problem Solving", "Environmental Studies", "Digital Basics"}, IconName: strPtr("GraduationCap"), ColorClass: strPtr("from-lavender to-lavender-dark"), BgColorClass: strPtr("bg-lavender/10"), DisplayOrder: 4, IsActive: true},
	}
}

func fallbackActivities() []models.Activity {
	return []models.Activity{
		{ID: "fallback-activity-1", Name: "Art & Craft", Description: strPtr("Express creativity through painting, drawing, and hands-on craft projects."), Emoji: strPtr("🎨"), IconName: strPtr("Palette"), ColorClass: strPtr("bg-candy"), DisplayOrder: 1, IsActive: true},
		{ID: "fallback-activity-2", Name: "Music & Dance", Description: strPtr("Explore rhythm, movement, and musical instruments in fun sessions."), Emoji: strPtr("🎵"), IconName: strPtr("Music"), ColorClass: strPtr("bg-sky"), DisplayOrder: 2, IsActive: true},
		{ID: "fallback-activity-3", Name: "Story Time", Description: strPtr("Magical storytelling sessions that spark imagination and language skills."), Emoji: strPtr("📖"), IconName: strPtr("BookOpen"), ColorClass: strPtr("bg-lavender"), DisplayOrder: 3, IsActive: true},
		{ID: "fallback-activity-4", Name: "Sports", Description: strPtr("Physical activities that develop coordination, teamwork, and fitness."), Emoji: strPtr("⚽"), IconName: strPtr("Trophy"), ColorClass: strPtr("bg-mint"), DisplayOrder: 4, IsActive: true},
		{ID: "fallback-activity-5", Name: "Basic Robotics", Description: strPtr("Introduction to STEM concepts through fun robotics activities."), Emoji: strPtr("🤖"), IconName: strPtr("Cpu"), ColorClass: strPtr("bg-sunshine"), DisplayOrder: 5, IsActive: true},
		{ID: "fallback-activity-6", Name: "Cooking Fun", Description: strPtr("Simple cooking activities that teach life skills and healthy eating."), Emoji: strPtr("🍳"), IconName: strPtr("Utensils"), ColorClass: strPtr("bg-orange"), DisplayOrder: 6, IsActive: true},
	}
}

func fallbackGallery() []models.GalleryItem {
	return []models.GalleryItem{
		{ID: "1", ImageURL: "https://images.unsplash.com/photo-1587654780291-39c9404d746b?w=600&h=400&fit=crop", AltText: strPtr("Children painting in art class"), Category: strPtr("Art"), DisplayOrder: 1, IsActive: true},
		{ID: "2", ImageURL: "https://images.unsplash.com/photo-1503454537195-1dcabb73ffb9?w=600&h=400&fit=crop", AltText: strPtr("Kids playing in the playground"), Category: strPtr("Play"), DisplayOrder: 2, IsActive: true},
		{ID: "3", ImageURL: "https://images.unsplash.com/photo-1544776193-352d25ca82cd?w=600&h=400&fit=crop", AltText: strPtr("Story time with teacher"), Category: strPtr("Learning"), DisplayOrder: 3, IsActive: true},
		{ID: "4", ImageURL: "https://images.unsplash.com/photo-1558618666-fcd25c85cd64?w=600&h=400&fit=crop", AltText: strPtr("Children doing crafts"), Category: strPtr("Craft"), DisplayOrder: 4, IsActive: true},
		{ID: "5", ImageURL: "https://images.unsplash.com/photo-1596464716127-f2a82984de30?w=600&h=400&fit=crop", AltText: strPtr("Music class performance"), Category: strPtr("Music"), DisplayOrder: 5, IsActive: true},
		{ID: "6", ImageURL: "https://images.unsplash.com/photo-1516627145497-ae6968895b74?w=600&h=400&fit=crop", AltText: strPtr("Outdoor activities"), Category: strPtr("Sports"), DisplayOrder: 6, IsActive: true},
	}
}

func fallbackTestimonials() []models.Testimonial {
	return []models.Testimonial{
		{ID: "1", Name: "Priya Patel", Role: "Parent of Aarav, Age 5", Content: "Rainbow Kids Academy has been a blessing for our family. Aarav has grown so much in confidence and loves going to school every day. The teachers are incredibly caring and creative!", Rating: 5, AvatarInitials: strPtr("PP"), ColorClass: strPtr("bg-candy"), IsActive: true},
		{ID: "2", Name: "Rajesh Sharma", Role: "Parent of Ananya, Age 4", Content: "The curriculum is perfect for young children - learning through play! Ananya comes home excited about what she learned each day. The communication with parents is excellent.", Rating: 5, AvatarInitials: strPtr("RS"), ColorClass: strPtr("bg-sky"), IsActive: true},
		{ID: "3", Name: "Meera Desai", Role: "Parent of Ishaan, Age 6", Content: "The best decision we made was enrolling Ishaan here. The facilities are wonderful, and the teachers go above and beyond. He's made great friends and loves all the activities!", Rating: 5, AvatarInitials: strPtr("MD"), ColorClass: strPtr("bg-mint"), IsActive: true},
		{ID: "4", Name: "Amit Mehta", Role: "Parent of Kavya, Age 3", Content: "As first-time parents, we were nervous about preschool, but Rainbow Kids made the transition so smooth. Kavya adapted quickly and the staff are amazing with the little ones.", Rating: 5, AvatarInitials: strPtr("AM"), ColorClass: strPtr("bg-lavender"), IsActive: true},
	}
}

func fallbackSettings() map[string]string {
	return map[string]string{
		models.SettingSiteTitle:        "Rainbow Kids Academy",
		models.SettingSiteDescription:  "A colorful preschool where children learn through play.",
		models.SettingOGImage:          "",
		models.SettingSchoolName:       "Rainbow Kids Academy",
		models.SettingSchoolTagline:    "Where Little Dreams Grow Big",
		models.SettingSchoolPhone:      "+1 (555) 123-4567",
		models.SettingSchoolEmail:      "hello@rainbowkids.edu",
		models.SettingSchoolAddress:    "123 Rainbow Street, Sunshine City, CA 90210",
		models.SettingSchoolHours:      "Mon - Fri: 8:00 AM - 4:00 PM",
		models.SettingMissionStatement: "To provide a joyful, inclusive, and stimulating environment where children develop confidence, creativity, and a lifelong love for learning through play-based education and meaningful experiences.",
	}
}
