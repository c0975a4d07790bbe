package knowledge

import "aqua-health-go/internal/model"

func symptom(id, en, hi, bn string) model.Symptom {
	return model.Symptom{ID: id, Labels: map[string]string{"en": en, "hi": hi, "bn": bn}}
}

// BuiltinSymptoms 是内置的规范症状词表。
func BuiltinSymptoms() []model.Symptom {
	return []model.Symptom{
		symptom("fever", "Fever", "बुखार", "জ্বর"),
		symptom("diarrhea", "Diarrhea", "दस्त", "ডায়রিয়া"),
		symptom("vomiting", "Vomiting", "उल्टी", "বমি"),
		symptom("nausea", "Nausea", "जी मिचलाना", "বমি বমি ভাব"),
		symptom("abdominal_pain", "Abdominal pain", "पेट दर्द", "পেটে ব্যথা"),
		symptom("cramps", "Cramps", "ऐंठन", "খিঁচুনি"),
		symptom("dehydration", "Dehydration", "निर्जलीकरण", "পানিশূন্যতা"),
		symptom("rice_water_stool", "Rice-water stool", "चावल के पानी जैसा मल", "চাল-ধোয়া পানির মতো মল"),
		symptom("headache", "Headache", "सिरदर्द", "মাথাব্যথা"),
		symptom("fatigue", "Fatigue", "थकान", "ক্লান্তি"),
		symptom("weakness", "Weakness", "कमजोरी", "দুর্বলতা"),
		symptom("loss_of_appetite", "Loss of appetite", "भूख न लगना", "ক্ষুধামন্দা"),
		symptom("jaundice", "Jaundice (yellow skin or eyes)", "पीलिया", "জন্ডিস"),
		symptom("dark_urine", "Dark urine", "गहरे रंग का पेशाब", "গাঢ় রঙের প্রস্রাব"),
		symptom("bloody_stool", "Blood in stool", "मल में खून", "মলে রক্ত"),
		symptom("weight_loss", "Weight loss", "वजन घटना", "ওজন কমে যাওয়া"),
		symptom("bloating", "Bloating", "पेट फूलना", "পেট ফাঁপা"),
		symptom("gas", "Gas", "गैस", "গ্যাস"),
		symptom("muscle_aches", "Muscle aches", "मांसपेशियों में दर्द", "পেশীতে ব্যথা"),
		symptom("chills", "Chills", "ठंड लगना", "কাঁপুনি"),
		symptom("rose_spots", "Rose-colored spots", "गुलाबी चकत्ते", "গোলাপি ফুসকুড়ি"),
		symptom("constipation", "Constipation", "कब्ज", "কোষ্ঠকাঠিন্য"),
		symptom("red_eyes", "Red eyes", "लाल आँखें", "চোখ লাল হওয়া"),
	}
}

// BuiltinDiseases 是内置的疾病表，顺序即评分同分时的先后顺序。
func BuiltinDiseases() []model.Disease {
	return []model.Disease{
		{
			ID:          "cholera",
			Name:        "Cholera",
			Description: "An acute diarrhoeal infection caused by eating food or drinking water contaminated with the bacterium Vibrio cholerae.",
			Remedies: []string{
				"Drink oral rehydration solution (ORS) frequently",
				"Seek medical care immediately for severe dehydration",
				"Continue breastfeeding infants",
				"Take zinc supplements for children as advised by a doctor",
			},
			ScoringKeywords:     []string{"fever", "diarrhea", "vomiting", "cramps", "dehydration", "rice_water_stool"},
			RecognitionKeywords: []string{"cholera", "हैजा", "haiza", "haija", "কলেরা"},
			Info: model.DiseaseInfo{
				Symptoms:   "Profuse watery (rice-water) diarrhea, vomiting, leg cramps and rapid dehydration.",
				Causes:     "Vibrio cholerae bacteria spread through contaminated drinking water and food, especially where sanitation is poor.",
				Treatment:  "Immediate rehydration with ORS or intravenous fluids; antibiotics for severe cases as prescribed by a doctor.",
				Prevention: "Drink boiled or treated water, wash hands with soap, eat freshly cooked food and use safe sanitation.",
			},
		},
		{
			ID:          "typhoid",
			Name:        "Typhoid",
			Description: "A systemic bacterial infection caused by Salmonella Typhi, spread through contaminated food and water.",
			Remedies: []string{
				"Complete the full course of antibiotics prescribed by a doctor",
				"Drink plenty of safe fluids",
				"Eat soft, easily digestible food",
				"Rest until the fever subsides",
			},
			ScoringKeywords:     []string{"fever", "headache", "abdominal_pain", "weakness", "loss_of_appetite", "rose_spots", "constipation"},
			RecognitionKeywords: []string{"typhoid", "enteric fever", "टाइफाइड", "मियादी बुखार", "টাইফয়েড"},
			Info: model.DiseaseInfo{
				Symptoms:   "Prolonged high fever, headache, stomach pain, weakness, loss of appetite and sometimes rose-colored spots.",
				Causes:     "Salmonella Typhi bacteria ingested with food or water contaminated by the faeces of an infected person.",
				Treatment:  "Antibiotics prescribed by a doctor, fluids and rest; severe cases need hospital care.",
				Prevention: "Typhoid vaccination, safe drinking water, hand washing and avoiding raw food from street vendors.",
			},
		},
		{
			ID:          "hepatitis_a",
			Name:        "Hepatitis A",
			Description: "A viral liver infection transmitted through contaminated food and water, usually self-limiting.",
			Remedies: []string{
				"Rest and avoid strenuous activity",
				"Avoid alcohol and medicines that strain the liver",
				"Eat small, balanced meals",
				"Stay hydrated",
			},
			ScoringKeywords:     []string{"fever", "fatigue", "nausea", "jaundice", "dark_urine", "abdominal_pain", "loss_of_appetite"},
			RecognitionKeywords: []string{"hepatitis a", "hepatitis", "jaundice", "पीलिया", "हेपेटाइटिस", "piliya", "জন্ডিস"},
			Info: model.DiseaseInfo{
				Symptoms:   "Fever, tiredness, nausea, loss of appetite, dark urine and yellowing of the skin and eyes.",
				Causes:     "The hepatitis A virus, spread by eating food or drinking water contaminated with an infected person's faeces.",
				Treatment:  "No specific antiviral treatment; supportive care with rest, nutrition and fluids under medical supervision.",
				Prevention: "Hepatitis A vaccination, safe water, proper sanitation and washing hands before eating.",
			},
		},
		{
			ID:          "dysentery",
			Name:        "Dysentery",
			Description: "An intestinal infection causing diarrhea with blood, usually caused by Shigella bacteria or amoebae.",
			Remedies: []string{
				"Drink ORS to replace lost fluids",
				"Consult a doctor for the right antibiotic or anti-amoebic medicine",
				"Avoid anti-diarrhoeal drugs unless prescribed",
			},
			ScoringKeywords:     []string{"diarrhea", "bloody_stool", "abdominal_pain", "fever", "cramps", "nausea"},
			RecognitionKeywords: []string{"dysentery", "bloody diarrhea", "पेचिश", "pechish", "আমাশয়"},
			Info: model.DiseaseInfo{
				Symptoms:   "Frequent loose stools with blood or mucus, abdominal cramps, fever and nausea.",
				Causes:     "Shigella bacteria or Entamoeba histolytica picked up from contaminated water, food or hands.",
				Treatment:  "Rehydration plus antibiotics or anti-amoebic medicines prescribed by a doctor.",
				Prevention: "Hand washing, safe drinking water, hygienic food handling and proper disposal of faeces.",
			},
		},
		{
			ID:          "giardiasis",
			Name:        "Giardiasis",
			Description: "An intestinal infection caused by the parasite Giardia, often from drinking untreated water.",
			Remedies: []string{
				"Take anti-parasitic medicine prescribed by a doctor",
				"Drink plenty of fluids",
				"Avoid dairy products until recovered",
			},
			ScoringKeywords:     []string{"diarrhea", "bloating", "gas", "cramps", "nausea", "fatigue", "weight_loss"},
			RecognitionKeywords: []string{"giardiasis", "giardia", "beaver fever", "जिआर्डियासिस"},
			Info: model.DiseaseInfo{
				Symptoms:   "Greasy diarrhea, gas, bloating, stomach cramps, nausea, tiredness and weight loss.",
				Causes:     "Giardia parasites swallowed with untreated water from wells, streams or contaminated food.",
				Treatment:  "Anti-parasitic medicines such as metronidazole or tinidazole as prescribed, plus fluids.",
				Prevention: "Boil or filter drinking water, wash hands and avoid swallowing water from lakes or pools.",
			},
		},
		{
			ID:          "cryptosporidiosis",
			Name:        "Cryptosporidiosis",
			Description: "A diarrhoeal disease caused by the Cryptosporidium parasite, which resists chlorine disinfection.",
			Remedies: []string{
				"Drink ORS and plenty of fluids",
				"Rest and eat light meals",
				"See a doctor if you have a weakened immune system",
			},
			ScoringKeywords: []string{"diarrhea", "cramps", "nausea", "vomiting", "fever", "dehydration", "weight_loss"},
			// 这里的识别词混入了症状名称，与评分词表不一致，保留原样等待产品确认
			RecognitionKeywords: []string{"cryptosporidiosis", "cryptosporidium", "watery diarrhea", "stomach cramps"},
			Info: model.DiseaseInfo{
				Symptoms:   "Watery diarrhea, stomach cramps, nausea, vomiting, mild fever and dehydration.",
				Causes:     "Cryptosporidium parasites in water contaminated with faeces, including chlorinated pools.",
				Treatment:  "Most people recover with fluids and rest; a doctor may prescribe nitazoxanide.",
				Prevention: "Boil drinking water, wash hands with soap, and avoid swimming while ill.",
			},
		},
		{
			ID:          "leptospirosis",
			Name:        "Leptospirosis",
			Description: "A bacterial disease spread through water or soil contaminated with the urine of infected animals, common after floods.",
			Remedies: []string{
				"Seek medical care early for antibiotics",
				"Drink safe fluids and rest",
				"Go to hospital immediately if jaundice or breathing difficulty appears",
			},
			ScoringKeywords:     []string{"fever", "headache", "muscle_aches", "chills", "vomiting", "jaundice", "red_eyes"},
			RecognitionKeywords: []string{"leptospirosis", "weil's disease", "rat fever", "लेप्टोस्पायरोसिस"},
			Info: model.DiseaseInfo{
				Symptoms:   "Sudden high fever, headache, muscle pain (especially calves), chills, vomiting, red eyes and sometimes jaundice.",
				Causes:     "Leptospira bacteria entering through cuts or mucous membranes from flood water or soil contaminated by animal urine.",
				Treatment:  "Antibiotics such as doxycycline or penicillin prescribed by a doctor; severe cases need hospital care.",
				Prevention: "Avoid wading in flood water, wear boots and gloves, cover cuts and control rodents.",
			},
		},
	}
}

// Builtin 返回内置知识库。内置数据校验失败属于编程错误。
func Builtin() *KnowledgeBase {
	kb, err := New(DefaultBaseLanguage, BuiltinSymptoms(), BuiltinDiseases())
	if err != nil {
		panic(err)
	}
	return kb
}
