package calendar

type activity struct {
	title       string
	description string
	kind        ActivityType
	prompts     [3]string
}

// weekThemes holds the theme and accent color of weeks 1-4.
var weekThemes = [...]struct{ theme, color string }{
	{"Dedication & Purification", "#E0F2FE"},
	{"Prayer & Intercession", "#DBEAFE"},
	{"Word & Wisdom", "#F0F9FF"},
	{"Service & Surrender", "#F8FAFC"},
}

// activities is indexed by day-1.
var activities = [Length]activity{
	{"Commit & Set Goals", "Commit the month to God in prayer & fasting. Write down your spiritual goals.", Prayer, [3]string{
		"What spiritual goals am I setting for this month?",
		"How do I want to grow closer to God?",
		"What areas of my life need God's guidance?",
	}},
	{"Path of Righteousness", "Read Psalm 1 and meditate on choosing the path of righteousness.", Reading, [3]string{
		"What does choosing the path of righteousness mean to me?",
		"How can I apply Psalm 1 to my daily life?",
		"What 'streams of water' is God providing in my life?",
	}},
	{"Gratitude Walk", "Morning prayer walk, giving thanks for creation.", Prayer, [3]string{
		"What aspects of creation am I most grateful for?",
		"How did my prayer walk connect me with God?",
		"What did I notice about God's presence in nature?",
	}},
	{"Digital Fast", "Fast from social media/entertainment; spend time in scripture (John 15:1-11).", Fasting, [3]string{
		"What distractions am I choosing to fast from?",
		"How does John 15:1-11 speak to my relationship with Christ?",
		"What fruit is God wanting to produce in my life?",
	}},
	{"Self-Examination", "Journal on areas of your life needing alignment with God.", Reflection, [3]string{
		"What areas of my life need better alignment with God's will?",
		"How is God calling me to change or grow?",
		"What patterns in my life honor or dishonor God?",
	}},
	{"Silent Kindness", "Act of kindness: help someone silently.", Service, [3]string{
		"How did serving others in secret feel?",
		"What did I learn about God's heart through acts of kindness?",
		"How can I make serving others a regular practice?",
	}},
	{"Worship Day", "Attend/stream a worship service or do extended home worship.", Worship, [3]string{
		"How did worship today impact my heart?",
		"What did I learn about God's character through worship?",
		"How can I carry this worship spirit into the new week?",
	}},
	{"Family Intercession", "Pray for family & close friends.", Prayer, [3]string{
		"What specific prayers did I lift up for my loved ones?",
		"How is God working in the lives of those I prayed for?",
		"What burdens am I carrying for others that I can give to God?",
	}},
	{"Thanksgiving Prayer", "Read Philippians 4:6-9 and practice thanksgiving prayer.", Reading, [3]string{
		"What am I most thankful for today?",
		"How does thanksgiving change my perspective on challenges?",
		"What peace is God offering me according to Philippians 4?",
	}},
	{"Community Fast", "Fast from one meal and pray for your community/nation.", Fasting, [3]string{
		"How did fasting help me focus on prayer?",
		"What concerns for my community did I bring before God?",
		"How is God calling me to be part of the solution in my community?",
	}},
	{"Celebrate Faithfulness", "Journal answered prayers from your past and celebrate God's faithfulness.", Reflection, [3]string{
		"What answered prayers from my past am I celebrating?",
		"How has God shown His faithfulness in my life?",
		"What current prayers am I trusting God with?",
	}},
	{"Night Vigil", "Night prayer vigil (short, even 30 minutes before bed).", Prayer, [3]string{
		"What did I experience during my night prayer time?",
		"How does extended prayer change my perspective?",
		"What is God speaking to my heart in the quiet moments?",
	}},
	{"Encourage Others", "Reach out to someone who needs encouragement.", Service, [3]string{
		"Who did I encourage today and how?",
		"How did encouraging others impact my own spirit?",
		"What words of hope is God giving me to share?",
	}},
	{"Worship & Gratitude", "Worship & gratitude day (sing, dance, or listen to worship music).", Worship, [3]string{
		"How did worship and gratitude fill my heart today?",
		"What songs or expressions of worship moved me most?",
		"How can I maintain a heart of worship daily?",
	}},
	{"Trust Fully", "Read Proverbs 3 and reflect on trusting God fully.", Reading, [3]string{
		"What does it mean to trust God with all my heart?",
		"How is God asking me to lean not on my own understanding?",
		"What paths is God making straight in my life?",
	}},
	{"Scripture Memory", "Memorize one verse (e.g., Romans 8:28).", Reading, [3]string{
		"How is the verse I memorized speaking to my current situation?",
		"What comfort or strength am I drawing from God's word?",
		"How can I hide God's word deeper in my heart?",
	}},
	{"Character Study", "Study one Bible character (e.g., Joseph, Genesis 39).", Reading, [3]string{
		"What did I learn from studying this Bible character?",
		"How does their story relate to my own journey?",
		"What qualities do I want to emulate in my own life?",
	}},
	{"Silent Listening", "Practice silence for 30 mins and listen for God's voice.", Prayer, [3]string{
		"What did I hear in the silence today?",
		"How is God speaking to me beyond words?",
		"What is God revealing about His heart for me?",
	}},
	{"Share Scripture", "Share a scripture with someone.", Service, [3]string{
		"How did sharing scripture impact both me and the other person?",
		"What verses is God highlighting for me to share?",
		"How can I be more intentional about sharing God's word?",
	}},
	{"Learning Journal", "Journal what God has been teaching you so far.", Reflection, [3]string{
		"What has God been teaching me this month?",
		"How have I grown spiritually since Day 1?",
		"What lessons do I want to remember and apply going forward?",
	}},
	{"Fellowship", "Attend a Bible study/fellowship or organize a small one.", Service, [3]string{
		"How did fellowship strengthen my faith today?",
		"What did I learn from others in our study/gathering?",
		"How can I be more committed to Christian community?",
	}},
	{"Serve the Needy", "Volunteer or give to the needy.", Service, [3]string{
		"How did serving others today impact my heart?",
		"What did I learn about God's heart for the needy?",
		"How can I make serving others a regular part of my life?",
	}},
	{"True Fasting", "Read Isaiah 58 (true fasting & justice).", Reading, [3]string{
		"What does true fasting mean according to Isaiah 58?",
		"How is God calling me to pursue justice and mercy?",
		"What oppression or need around me can I help address?",
	}},
	{"Global Intercession", "Fast and intercede for global issues (peace, poverty, etc.).", Fasting, [3]string{
		"What global issues weigh on my heart today?",
		"How did interceding for the world change my perspective?",
		"What role is God calling me to play in His global purposes?",
	}},
	{"Gratitude List", "Write a gratitude list of 30 things.", Reflection, [3]string{
		"What 30 things am I most grateful for?",
		"How has gratitude shifted my heart this month?",
		"What blessings have I taken for granted?",
	}},
	{"Forgiveness", "Forgive someone you've struggled with.", Reflection, [3]string{
		"How did forgiveness free my heart today?",
		"What is God teaching me about His forgiveness?",
		"What relationships need the healing power of forgiveness?",
	}},
	{"Reconciliation", "Reach out to reconcile a relationship.", Service, [3]string{
		"How did reaching out for reconciliation feel?",
		"What barriers to relationship is God helping me overcome?",
		"How is God restoring relationships in my life?",
	}},
	{"Extended Prayer", "Extended worship/prayer session.", Worship, [3]string{
		"How did extended worship transform my heart today?",
		"What aspects of God's character did I encounter in worship?",
		"How can I maintain this heart of worship beyond today?",
	}},
	{"Monthly Testimony", "Reflect on how God has shaped you this month and write a testimony.", Reflection, [3]string{
		"How has God shaped me throughout this month?",
		"What testimony of God's faithfulness can I share?",
		"What changes do I see in my heart and life?",
	}},
	{"Dedication Forward", "Thanksgiving service: dedicate the next season to God.", Worship, [3]string{
		"How am I dedicating the next season to God?",
		"What commitments am I making for continued spiritual growth?",
		"How will I carry forward what I've learned this month?",
	}},
}
